package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/groomroom/groomroom/internal/domain"
)

func TestTicket_Text(t *testing.T) {
	tests := []struct {
		name   string
		ticket domain.Ticket
		want   string
	}{
		{"body only", domain.Ticket{Body: "As a shopper"}, "As a shopper"},
		{"title only", domain.Ticket{Title: " Size filter "}, "Size filter"},
		{"both", domain.Ticket{Title: "Size filter", Body: "As a shopper"}, "Size filter\nAs a shopper"},
		{"blank body", domain.Ticket{Title: "Size filter", Body: "  \n"}, "Size filter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ticket.Text())
		})
	}
}

func TestTicket_IsEmpty(t *testing.T) {
	assert.True(t, domain.Ticket{}.IsEmpty())
	assert.True(t, domain.Ticket{ID: "SHOP-1", Body: " \t\n"}.IsEmpty())
	assert.False(t, domain.Ticket{Title: "x"}.IsEmpty())
}

func TestExtractedFields_AbsentByDefault(t *testing.T) {
	f := domain.NewExtractedFields()
	for _, k := range domain.AllFields {
		assert.Equal(t, domain.FieldAbsent, f.Status(k))
		assert.Equal(t, "", f.Text(k))
	}
}

func TestExtractedFields_PlaceholderHasNoText(t *testing.T) {
	f := domain.NewExtractedFields()
	f.Fields[domain.FieldTestScenarios] = domain.Field{Key: domain.FieldTestScenarios, Status: domain.FieldPlaceholder, Content: "TBD"}
	f.Fields[domain.FieldBrands] = domain.Field{Key: domain.FieldBrands, Status: domain.FieldPresent, Content: "Acme"}

	assert.False(t, f.IsPresent(domain.FieldTestScenarios))
	assert.Equal(t, "", f.Text(domain.FieldTestScenarios))
	assert.Equal(t, "TBD", f.Get(domain.FieldTestScenarios).Content)
	assert.Equal(t, "Acme", f.Text(domain.FieldBrands))

	without := f.Without(domain.FieldBrands)
	assert.False(t, without.IsPresent(domain.FieldBrands))
	assert.True(t, f.IsPresent(domain.FieldBrands))
}

func TestCardType_IsStoryLike(t *testing.T) {
	assert.True(t, domain.CardStory.IsStoryLike())
	assert.True(t, domain.CardFeature.IsStoryLike())
	assert.False(t, domain.CardBug.IsStoryLike())
	assert.False(t, domain.CardTask.IsStoryLike())
}

func TestIsKnownField(t *testing.T) {
	assert.True(t, domain.IsKnownField(domain.FieldAdaCriteria))
	assert.False(t, domain.IsKnownField(domain.FieldDescription))
	assert.False(t, domain.IsKnownField("release_notes"))
}
