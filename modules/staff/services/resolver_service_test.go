package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/aggregates/employee"
	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/domain/entities/catalog"
	"github.com/Lushbits/pdbulkupload-sub002/modules/staff/services"
)

func TestResolveExactMatch(t *testing.T) {
	resolver := services.NewResolverService(testCatalogs(t))

	for _, text := range []string{"Kitchen", "kitchen", "KITCHEN", "  Kitchen  "} {
		result := resolver.Resolve(text, catalog.Departments)
		require.True(t, result.Resolved(), "input %q", text)
		assert.Equal(t, []int{1}, result.IDs)
		assert.Empty(t, result.Warnings)
	}
}

func TestResolveCommaSeparatedList(t *testing.T) {
	resolver := services.NewResolverService(testCatalogs(t))

	result := resolver.Resolve("Kitchen, Bar, Front Desk", catalog.Departments)
	require.True(t, result.Resolved())
	assert.Equal(t, []int{1, 2, 3}, result.IDs)
}

func TestResolveDuplicateTokenWarns(t *testing.T) {
	resolver := services.NewResolverService(testCatalogs(t))

	result := resolver.Resolve("Kitchen, kitchen", catalog.Departments)
	require.True(t, result.Resolved())
	assert.Equal(t, []int{1}, result.IDs)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, employee.CodeDuplicateToken, result.Warnings[0].Code)
	assert.Equal(t, employee.SeverityWarning, result.Warnings[0].Severity)
}

func TestResolveRawIdentifierWarns(t *testing.T) {
	resolver := services.NewResolverService(testCatalogs(t))

	result := resolver.Resolve("2", catalog.Departments)
	require.True(t, result.Resolved())
	assert.Equal(t, []int{2}, result.IDs)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, employee.CodeRawIdentifier, result.Warnings[0].Code)
	assert.Contains(t, result.Warnings[0].Message, `"Bar"`)
}

func TestResolveUnknownRawIdentifier(t *testing.T) {
	resolver := services.NewResolverService(testCatalogs(t))

	result := resolver.Resolve("999", catalog.Departments)
	require.False(t, result.Resolved())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, employee.CodeUnresolved, result.Errors[0].Code)
}

func TestResolveSuggestionTiers(t *testing.T) {
	resolver := services.NewResolverService(testCatalogs(t))

	t.Run("single suggestion above the high bar", func(t *testing.T) {
		result := resolver.Resolve("Ktichen", catalog.Departments)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0].Message, `did you mean "Kitchen"?`)

		require.Len(t, result.Misses, 1)
		best, ok := result.Misses[0].Best()
		require.True(t, ok)
		assert.Equal(t, 1, best.ID)
		assert.InDelta(t, 1.0-2.0/7.0, best.Confidence, 1e-9)
	})

	t.Run("candidate list in the middle band", func(t *testing.T) {
		result := resolver.Resolve("Bat", catalog.Departments)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0].Message, `closest matches are "Bar"`)
	})

	t.Run("plain not-found below the low bar", func(t *testing.T) {
		result := resolver.Resolve("Zzz", catalog.Departments)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, `"Zzz" is not a known department`, result.Errors[0].Message)
	})
}

func TestResolveEmployeeTypeNeverSplits(t *testing.T) {
	resolver := services.NewResolverService(testCatalogs(t))

	result := resolver.Resolve("Full Time", catalog.EmployeeTypes)
	require.True(t, result.Resolved())
	assert.Equal(t, []int{20}, result.IDs)

	// A comma list in a single-valued dimension is one (unknown) token.
	result = resolver.Resolve("Full Time, Part Time", catalog.EmployeeTypes)
	require.False(t, result.Resolved())
	require.Len(t, result.Errors, 1)
}

func TestResolveIsIdempotent(t *testing.T) {
	resolver := services.NewResolverService(testCatalogs(t))

	first := resolver.Resolve("Ktichen, Bar", catalog.Departments)
	second := resolver.Resolve("Ktichen, Bar", catalog.Departments)
	assert.Equal(t, first, second)
}

func TestResolveSkipsEmptyTokens(t *testing.T) {
	resolver := services.NewResolverService(testCatalogs(t))

	result := resolver.Resolve("Kitchen, , Bar,", catalog.Departments)
	require.True(t, result.Resolved())
	assert.Equal(t, []int{1, 2}, result.IDs)
	assert.Empty(t, result.Warnings)
}
