package session

import "mawja-backend/internal/model"

// Key identifies one conversation: a document plus the section of it the
// user is chatting about. Two keys are equal iff both fields are equal.
type Key struct {
	DocumentID string
	Section    string
}

// StorageID derives the session id. The concatenation rule is shared with
// the frontend and must not change: documentId + "_" + sectionKey.
func (k Key) StorageID() string {
	return k.DocumentID + "_" + k.Section
}

var sectionLabels = map[string]string{
	model.SectionConcept:     "الفكرة",
	model.SectionPreparation: "الإعداد",
	model.SectionScript:      "النص",
	model.SectionGlobal:      "عام",
}

// SectionLabel returns the display name for a section key. Unknown keys
// pass through unchanged so the UI never renders an empty label.
func SectionLabel(section string) string {
	if label, ok := sectionLabels[section]; ok {
		return label
	}
	return section
}
