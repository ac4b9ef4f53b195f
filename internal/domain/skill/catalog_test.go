package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	assert.Len(t, c, 20)
	assert.True(t, c.Contains("Python"))
	assert.True(t, c.Contains(" machine learning "))
	assert.False(t, c.Contains("golang"))

	c[0] = "changed"
	assert.Equal(t, Skill("python"), DefaultCatalog()[0])
}

func TestSet_Operations(t *testing.T) {
	a := NewSet("Python", "docker", "python", "")
	b := NewSet("python", "aws", "kubernetes")

	assert.Equal(t, 2, a.Len())
	assert.Equal(t, []Skill{"python"}, a.Intersect(b).Sorted())
	assert.Equal(t, []Skill{"aws", "kubernetes"}, b.Difference(a).Sorted())
	assert.Equal(t, []Skill{"docker"}, a.Difference(b).Sorted())
	assert.Equal(t, []string{"aws", "kubernetes"}, Strings(b.Difference(a).Sorted()))
}
