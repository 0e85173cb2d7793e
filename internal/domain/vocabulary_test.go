package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/groomroom/groomroom/internal/domain"
)

func TestDefaultVocabulary_HeadingSynonymsCoverEveryField(t *testing.T) {
	v := domain.DefaultVocabulary()
	for _, k := range domain.AllFields {
		assert.NotEmpty(t, v.HeadingSynonyms[k], k)
	}
}

func TestHeadingIndex(t *testing.T) {
	idx := domain.DefaultVocabulary().HeadingIndex()
	assert.Equal(t, domain.FieldAcceptanceCriteria, idx["acceptance criteria"])
	assert.Equal(t, domain.FieldAcceptanceCriteria, idx["ac"])
	assert.Equal(t, domain.FieldCurrentBehaviour, idx["actual behavior"])
	assert.Equal(t, domain.FieldSeverityPriority, idx["severity / priority"])
	_, ok := idx["release notes"]
	assert.False(t, ok)
}

func TestHeadingIndex_FirstFieldWinsSharedSynonym(t *testing.T) {
	v := domain.DefaultVocabulary()
	v.HeadingSynonyms[domain.FieldDependencies] = append(v.HeadingSynonyms[domain.FieldDependencies], "story")
	assert.Equal(t, domain.FieldUserStory, v.HeadingIndex()["story"])
}

func TestSortedVaguePhrases_LongestFirst(t *testing.T) {
	sorted := domain.DefaultVocabulary().SortedVaguePhrases()
	for i := 1; i < len(sorted); i++ {
		assert.GreaterOrEqual(t, len(sorted[i-1].Phrase), len(sorted[i].Phrase))
	}

	pos := func(p string) int {
		for i, vp := range sorted {
			if vp.Phrase == p {
				return i
			}
		}
		return -1
	}
	assert.Less(t, pos("works correctly"), pos("correctly"))
	assert.Less(t, pos("should match figma"), pos("match figma"))
}

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "acceptance criteria", domain.NormalizeLabel("  Acceptance\t  CRITERIA "))
	assert.Equal(t, "", domain.NormalizeLabel("   "))
}

func TestDefaultVocabulary_IsFreshCopy(t *testing.T) {
	a := domain.DefaultVocabulary()
	a.Placeholders[0] = "changed"
	a.HeadingSynonyms[domain.FieldBrands] = nil

	b := domain.DefaultVocabulary()
	assert.Equal(t, "tbd", b.Placeholders[0])
	assert.NotEmpty(t, b.HeadingSynonyms[domain.FieldBrands])
}
