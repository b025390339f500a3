package reviews

// SaveState enumerates the transient save indicator states.
type SaveState string

// Save indicator states. Saved is shown for a bounded display window
// after a successful write, then decays to Idle. Error is sticky until
// the next successful save.
const (
	SaveIdle   SaveState = "idle"
	SaveSaving SaveState = "saving"
	SaveSaved  SaveState = "saved"
	SaveError  SaveState = "error"
)

// SaveStatus is the derived, never-persisted save indicator for a session.
type SaveStatus struct {
	State   SaveState `json:"state"`
	Message string    `json:"message,omitempty"`
}
