package omnifocus

const (
	taskItemTypeStringConstant    = "task"
	projectItemTypeStringConstant = "project"
)

// ItemType enumerates the removable OmniFocus item categories.
type ItemType string

// Supported item types.
const (
	ItemTypeTask    ItemType = ItemType(taskItemTypeStringConstant)
	ItemTypeProject ItemType = ItemType(projectItemTypeStringConstant)
)

// IsValid reports whether the item type names a supported category.
func (itemType ItemType) IsValid() bool {
	return itemType == ItemTypeTask || itemType == ItemTypeProject
}

// RemovalRequest identifies a single item to delete. ID and Name are each
// optional but at least one must be supplied for the request to reach
// OmniFocus; ItemType is required.
type RemovalRequest struct {
	ID       string
	Name     string
	ItemType ItemType
}

// RemovalOutcome reports the result of a removal. Success true carries the
// deleted item's ID and Name; Success false carries Error. The two shapes are
// mutually exclusive.
type RemovalOutcome struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Error   string `json:"error,omitempty"`
}
