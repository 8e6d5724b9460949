package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuestAcademy_Go/internal/domain"
)

func TestValidator_StatKeys(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name        string
		allocations map[domain.StatName]int
		wantErr     bool
	}{
		{"single stat", map[domain.StatName]int{domain.StatIntelligence: 3}, false},
		{"every stat", map[domain.StatName]int{
			domain.StatIntelligence: 1, domain.StatVitality: 1, domain.StatWisdom: 1,
			domain.StatCharisma: 1, domain.StatDexterity: 1, domain.StatCreativity: 1,
		}, false},
		{"zero points allowed", map[domain.StatName]int{domain.StatWisdom: 0}, false},

		{"empty map", map[domain.StatName]int{}, true},
		{"nil map", nil, true},
		{"unknown stat", map[domain.StatName]int{"luck": 2}, true},
		{"wrong case", map[domain.StatName]int{"Intelligence": 2}, true},
		{"negative points", map[domain.StatName]int{domain.StatVitality: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(AllocateStatsRequest{Allocations: tt.allocations})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_Specialization(t *testing.T) {
	v := GetValidator()

	specs := []domain.Specialization{
		domain.SpecializationScholar, domain.SpecializationGuardian, domain.SpecializationSage,
		domain.SpecializationDiplomat, domain.SpecializationRanger, domain.SpecializationArtificer,
	}
	for _, spec := range specs {
		t.Run(string(spec), func(t *testing.T) {
			assert.NoError(t, v.ValidateStruct(SelectSpecializationRequest{Specialization: spec}))
		})
	}

	assert.Error(t, v.ValidateStruct(SelectSpecializationRequest{Specialization: ""}), "required")
	assert.Error(t, v.ValidateStruct(SelectSpecializationRequest{Specialization: "necromancer"}))
}

func TestValidator_CharacterName(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name     string
		charName string
		wantErr  bool
	}{
		{"valid name", "Ada", false},
		{"exactly max length", strings.Repeat("a", 32), false},
		{"over max length", strings.Repeat("a", 33), true},
		{"empty", "", true},
		{"with newline", "Ada\nLovelace", true},
		{"with null byte", "Ada\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(CreateCharacterRequest{UserID: "user-1", Name: tt.charName})
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidator_AddItemQuantity(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name     string
		quantity int
		wantErr  bool
	}{
		{"one", 1, false},
		{"max allowed", 10000, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"over max", 10001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(AddItemRequest{UserID: "user-1", ItemKey: domain.ItemKeyRespecToken, Quantity: tt.quantity})
			if tt.wantErr {
				assert.Error(t, err, "Expected validation error for quantity=%d", tt.quantity)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	v := GetValidator()

	err := v.ValidateStruct(UpdateWorldProgressRequest{UserID: "", WorldID: "science-citadel", FavoriteRating: intPtr(9)})
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "This field is required", fields["user_id"])
	assert.Equal(t, "Must be at most 5", fields["favorite_rating"])
	assert.NotContains(t, fields, "UserID")

	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, "Invalid request format", FormatValidationError(assert.AnError)["error"])
}

func intPtr(v int) *int { return &v }
