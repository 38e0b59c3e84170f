package model

// Facility categories form a small closed set. The wire name for the
// field is "type" because that is what the client reads.
const (
	CategoryLab       = "LAB"
	CategoryClassroom = "CLASSROOM"
	CategorySports    = "SPORTS"
	CategoryMeeting   = "MEETING"
)

// Facility represents a row in the `facilities` table. Facilities are
// reference data owned by the catalog: the booking core reads them but
// never creates or mutates them.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the facility.
//  Category    – one of the Category* constants (serialized as "type").
//  Building    – building the facility is located in.
//  Floor       – floor number within the building.
//  Capacity    – maximum number of occupants.
//  Description – free-text description.
//  IsActive    – whether the facility is currently bookable.
type Facility struct {
	ID          uint64 `json:"id"`          // facilities.id
	Name        string `json:"name"`        // facilities.name
	Category    string `json:"type"`        // facilities.category
	Building    string `json:"building"`    // facilities.building
	Floor       int32  `json:"floor"`       // facilities.floor
	Capacity    uint32 `json:"capacity"`    // facilities.capacity
	Description string `json:"description"` // facilities.description
	IsActive    bool   `json:"isActive"`    // facilities.is_active
}
