// Package payload builds and validates the REDCap form submission that
// accompanies each uploaded slide.
package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/backmassage/wsi2fiona/internal/naming"
)

// Form field names accepted by the FIONA Attach endpoint.
const (
	FieldProjectName = "project_name"
	FieldRecordID    = "record_id"
	FieldEventName   = "redcap_event_name"
	FieldStain       = "patho_stain"
	FieldDatabaseID  = "patho_databaseid"
	FieldBiopsyNr    = "patho_biopsy_nr"
	FieldBiopsyID    = "patho_biopsy_id"
	FieldImageID     = "patho_image_id"
	FieldBlockNr     = "patho_block_nr"
	FieldSlideNr     = "patho_slide_nr"
	FieldSlideID     = "patho_slide_id"
	FieldDepartment  = "patho_department"
	FieldSpecimen    = "patho_specimen"
	FieldSubmit      = "submit"
)

// RequiredFields must be non-empty before a payload may be uploaded. They
// are checked in this order.
var RequiredFields = []string{FieldProjectName, FieldRecordID, FieldEventName, FieldImageID}

// Payload is one slide's form submission. DatabaseID and BiopsyNr are
// reserved by the endpoint; no filename field feeds them, so they are sent
// empty.
type Payload struct {
	ProjectName string `json:"project_name"`
	RecordID    string `json:"record_id"`
	EventName   string `json:"redcap_event_name"`
	Stain       string `json:"patho_stain"`
	DatabaseID  string `json:"patho_databaseid"`
	BiopsyNr    string `json:"patho_biopsy_nr"`
	BiopsyID    string `json:"patho_biopsy_id"`
	ImageID     string `json:"patho_image_id"`
	BlockNr     string `json:"patho_block_nr"`
	SlideNr     string `json:"patho_slide_nr"`
	SlideID     string `json:"patho_slide_id"`
	Department  string `json:"patho_department"`
	Specimen    string `json:"patho_specimen"`
	Submit      string `json:"submit"`
}

// Field is one form key/value pair.
type Field struct {
	Name  string
	Value string
}

// MissingFieldError reports the first required field found empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing %s", e.Field)
}

// Build assembles the payload for one slide. Every value is whitespace
// trimmed; record_id is "<project>_<participant>".
func Build(project, event string, sn naming.SlideName) Payload {
	project = strings.TrimSpace(project)
	return Payload{
		ProjectName: project,
		RecordID:    project + "_" + strings.TrimSpace(sn.Participant),
		EventName:   strings.TrimSpace(event),
		Stain:       strings.TrimSpace(sn.Stain),
		BiopsyID:    strings.TrimSpace(sn.BiopsyID),
		ImageID:     strings.TrimSpace(sn.ImageID),
		BlockNr:     strings.TrimSpace(sn.BlockNumber),
		SlideNr:     strings.TrimSpace(sn.SlideNumber),
		SlideID:     strings.TrimSpace(sn.SlideID),
		Department:  strings.TrimSpace(sn.Department),
		Specimen:    strings.TrimSpace(sn.Specimen),
		Submit:      "1",
	}
}

// Validate returns a *MissingFieldError for the first empty required field,
// or nil.
func (p Payload) Validate() error {
	values := p.Map()
	for _, f := range RequiredFields {
		if strings.TrimSpace(values[f]) == "" {
			return &MissingFieldError{Field: f}
		}
	}
	return nil
}

// Fields returns the form fields in the order the endpoint's own form
// submits them.
func (p Payload) Fields() []Field {
	return []Field{
		{FieldProjectName, p.ProjectName},
		{FieldRecordID, p.RecordID},
		{FieldEventName, p.EventName},
		{FieldStain, p.Stain},
		{FieldDatabaseID, p.DatabaseID},
		{FieldBiopsyNr, p.BiopsyNr},
		{FieldBiopsyID, p.BiopsyID},
		{FieldImageID, p.ImageID},
		{FieldBlockNr, p.BlockNr},
		{FieldSlideNr, p.SlideNr},
		{FieldSlideID, p.SlideID},
		{FieldDepartment, p.Department},
		{FieldSpecimen, p.Specimen},
		{FieldSubmit, p.Submit},
	}
}

// Map returns the payload keyed by form field name.
func (p Payload) Map() map[string]string {
	fields := p.Fields()
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		m[f.Name] = f.Value
	}
	return m
}

// JSON renders the payload with keys sorted and two-space indentation.
func (p Payload) JSON() string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	// Encoding a map sorts its keys.
	if err := enc.Encode(p.Map()); err != nil {
		return fmt.Sprintf("%+v", p)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
