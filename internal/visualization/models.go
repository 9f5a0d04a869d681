package visualization

// DefaultName is substituted when a payload carries no name.
const DefaultName = "Enter Visualization name here."

// MaxDescriptionLength is the longest accepted description, in characters.
const MaxDescriptionLength = 180

// Visualization is the persisted visualization record.
// Firm is an opaque tag copied from the request header on create; it is
// never part of the validated payload.
type Visualization struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Firm        string `json:"firm,omitempty"`
}

// Summary is the list projection of a Visualization.
type Summary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Summary projects v to the fields returned by List.
func (v *Visualization) Summary() Summary {
	return Summary{ID: v.ID, Name: v.Name, Description: v.Description}
}
