package roles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradecv/gradecv/internal/domain"
)

func genericProfile() domain.RoleProfile {
	return domain.RoleProfile{
		Role:                "generic",
		RequiredKeywords:    []string{"communication"},
		ExpectedActionVerbs: []string{"led", "built"},
	}
}

func TestNew_RequiresGenericFallback(t *testing.T) {
	_, err := New([]domain.RoleProfile{{
		Role:                "backend engineer",
		ExpectedActionVerbs: []string{"built"},
	}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := New([]domain.RoleProfile{
		genericProfile(),
		{Role: "Backend Engineer", Level: "Senior", ExpectedActionVerbs: []string{"led"}},
		{Role: "backend engineer", Level: "senior", ExpectedActionVerbs: []string{"led"}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestResolve_FallbackChain(t *testing.T) {
	reg, err := New([]domain.RoleProfile{
		genericProfile(),
		{Role: "backend engineer", RequiredKeywords: []string{"go"}, ExpectedActionVerbs: []string{"built"}},
		{Role: "backend engineer", Level: "senior", RequiredKeywords: []string{"go", "kubernetes"}, ExpectedActionVerbs: []string{"led"}},
	})
	require.NoError(t, err)

	exact := reg.Resolve("Backend Engineer", "Senior")
	assert.Equal(t, []string{"go", "kubernetes"}, exact.RequiredKeywords)

	roleOnly := reg.Resolve("backend engineer", "staff")
	assert.Equal(t, []string{"go"}, roleOnly.RequiredKeywords)

	generic := reg.Resolve("underwater basket weaver", "")
	assert.Equal(t, "generic", generic.Role)

	empty := reg.Resolve("", "")
	assert.Equal(t, "generic", empty.Role)
}

func TestList_SortedWithLevels(t *testing.T) {
	reg, err := New([]domain.RoleProfile{
		genericProfile(),
		{Role: "data analyst", ExpectedActionVerbs: []string{"analyzed"}},
		{Role: "backend engineer", Level: "senior", ExpectedActionVerbs: []string{"led"}},
		{Role: "backend engineer", Level: "junior", ExpectedActionVerbs: []string{"built"}},
	})
	require.NoError(t, err)

	entries := reg.List()
	require.Len(t, entries, 3)
	assert.Equal(t, "backend engineer", entries[0].Role)
	assert.Equal(t, []string{"junior", "senior"}, entries[0].Levels)
	assert.Equal(t, "data analyst", entries[1].Role)
	assert.Equal(t, "generic", entries[2].Role)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roles.yaml")
	content := `profiles:
  - role: generic
    requiredKeywords: [communication]
    expectedActionVerbs: [led, built]
  - role: backend engineer
    level: senior
    requiredKeywords: [go, postgresql]
    preferredKeywords: [kubernetes]
    expectedActionVerbs: [architected, led]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	reg, err := Load(path)
	require.NoError(t, err)
	p := reg.Resolve("backend engineer", "senior")
	assert.Equal(t, []string{"go", "postgresql"}, p.RequiredKeywords)
	assert.Equal(t, []string{"kubernetes"}, p.PreferredKeywords)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfig)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profiles: {not: a list}"), 0o600))
	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfig)
}
