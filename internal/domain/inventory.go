package domain

// ItemKeyRespecToken is the catalogue key of the item spent on a respec
const ItemKeyRespecToken = "respec_token"

// Item categories
const (
	ItemCategoryConsumable = "consumable"
	ItemCategoryEquipment  = "equipment"
	ItemCategoryCosmetic   = "cosmetic"
)

// InventoryItem is a catalogue item
type InventoryItem struct {
	ID         int      `json:"id"`
	Key        string   `json:"key"`
	Name       string   `json:"name"`
	Rarity     int      `json:"rarity"` // tier 1-5
	Category   string   `json:"category"`
	Slot       string   `json:"slot,omitempty"`
	StatBonus  StatName `json:"stat_bonus,omitempty"`
	BonusValue int      `json:"bonus_value,omitempty"`
}

// InventoryEntry is a user's owned quantity of an item
type InventoryEntry struct {
	UserID   string        `json:"user_id"`
	Item     InventoryItem `json:"item"`
	Quantity int           `json:"quantity"`
}
