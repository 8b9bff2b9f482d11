// Package ingest is the normalization boundary between raw backend guest
// payloads and the canonical GuestRecord shape. Backend responses mix
// camelCase and snake_case field names, nest or flatten the detail block,
// and return images as paths or base64 blobs; everything downstream of
// this package only ever sees the canonical shape.
package ingest

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/roomsync/guest-reconciler/logger"
	"github.com/roomsync/guest-reconciler/types"
)

// GuestsFromAPI decodes a raw guest-fetch response body into canonical
// records. The list may arrive bare or wrapped in a {"data": ...} or
// {"guests": ...} envelope. Anything that is not a list of objects
// degrades to an empty roster rather than an error; the check-in flow
// proceeds with less information.
func GuestsFromAPI(payload []byte) []types.GuestRecord {
	log := logger.GetLogger()

	var decoded any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		log.Warnw("Guest payload is not valid JSON, treating as empty roster", "error", err)
		return nil
	}

	if envelope, ok := decoded.(map[string]any); ok {
		if inner, ok := envelope["data"]; ok {
			decoded = inner
		} else if inner, ok := envelope["guests"]; ok {
			decoded = inner
		}
	}

	list, ok := decoded.([]any)
	if !ok {
		log.Warnw("Guest payload is not a list, treating as empty roster")
		return nil
	}

	out := make([]types.GuestRecord, 0, len(list))
	for idx, item := range list {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, GuestFromRaw(raw, idx))
	}
	return out
}

// GuestFromRaw maps one loosely-typed guest object onto the canonical
// record. idx is the record's position in the source list, used for the
// fallback id and the placeholder display name.
func GuestFromRaw(raw map[string]any, idx int) types.GuestRecord {
	details, _ := raw["details"].(map[string]any)

	id := stringField(raw, "guestId", "guest_id", "customer_id", "customerId", "person_id", "personId", "id")
	if id == "" {
		id = strconv.Itoa(idx)
	}

	firstName := detailField(raw, details, "firstName", "first_name")
	lastName := detailField(raw, details, "lastName", "last_name")

	name := stringField(raw, "full_name", "fullName", "name")
	if name == "" {
		name = strings.TrimSpace(firstName + " " + lastName)
	}
	if name == "" {
		name = fmt.Sprintf("Guest %d", idx+1)
	}

	faceImage := stringField(raw, "faceImage", "faceImagePath", "face_image", "face_image_path", "face_image_base64")
	documentImage := stringField(raw, "documentImage", "documentImagePath", "document_image", "document_image_path", "document_image_base64")

	return types.GuestRecord{
		ID:           id,
		Name:         name,
		IsMainGuest:  boolField(raw, "isMainGuest", "is_main_guest", "main_guest"),
		DocumentType: documentType(stringField(raw, "documentType", "id_type")),
		Details: types.GuestDetails{
			FirstName:      firstName,
			LastName:       lastName,
			Gender:         detailField(raw, details, "gender"),
			Nationality:    detailField(raw, details, "nationality"),
			DateOfBirth:    detailField(raw, details, "dateOfBirth", "date_of_birth"),
			DocumentNumber: detailField(raw, details, "documentNumber", "id_number", "document_number"),
			CurrentAddress: detailField(raw, details, "currentAddress", "current_address"),
			DateOfArrival:  detailField(raw, details, "dateOfArrival", "date_of_arrival"),
			VisaType:       detailField(raw, details, "visaType", "visa_type"),
			StayExpiryDate: detailField(raw, details, "stayExpiryDate", "stay_expiry_date"),
			PointOfEntry:   detailField(raw, details, "pointOfEntry", "point_of_entry"),
			TMCardNumber:   detailField(raw, details, "tmCardNumber", "tm_card_number"),
		},
		FaceImage:     faceImage,
		DocumentImage: documentImage,
		Progress:      progress(raw, faceImage, documentImage),
		BookingRoomID: stringField(raw, "bookingRoomId", "booking_room_id", "bookingRoomID"),
	}
}

// detailField resolves one detail value: the nested details block wins,
// then the flattened aliases on the record itself.
func detailField(raw, details map[string]any, nestedKey string, aliases ...string) string {
	if v := asString(details[nestedKey]); v != "" {
		return v
	}
	if v := stringField(raw, aliases...); v != "" {
		return v
	}
	return asString(raw[nestedKey])
}

// stringField returns the first alias whose value renders to a non-empty
// string. Numeric values are stringified since backends return ids both ways.
func stringField(raw map[string]any, aliases ...string) string {
	for _, key := range aliases {
		if v := asString(raw[key]); v != "" {
			return v
		}
	}
	return ""
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

// boolField is true only when some alias carries an explicit boolean
// true; truthy strings or numbers do not count as a main-guest claim.
func boolField(raw map[string]any, aliases ...string) bool {
	for _, key := range aliases {
		if b, ok := raw[key].(bool); ok && b {
			return true
		}
	}
	return false
}

// documentType sniffs the document kind from whatever label the backend
// used ("PASSPORT", "passport", "Overseas Passport", "idcard", "ID_CARD").
// Unknown labels default to the id card, matching the dominant case.
func documentType(label string) types.DocumentType {
	upper := strings.ToUpper(label)
	if strings.Contains(upper, "PASSPORT") {
		return types.DocumentTypePassport
	}
	return types.DocumentTypeIDCard
}

// progress passes a numeric progress through untouched, deriving the
// historical 0/50/100 staging from captured images otherwise.
func progress(raw map[string]any, faceImage, documentImage string) int {
	if v, ok := raw["progress"].(float64); ok {
		return int(v)
	}
	if faceImage != "" && documentImage != "" {
		return 100
	}
	if faceImage != "" {
		return 50
	}
	return 0
}
