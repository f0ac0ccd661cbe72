package helpers

import gonanoid "github.com/matoous/go-nanoid/v2"

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
const idLength = 10

// NewReportID generates a short unique ID for scan reports and audit rows.
func NewReportID() (string, error) {
	id, err := gonanoid.Generate(alphabet, idLength)
	if err != nil {
		return "", err
	}
	return "rep_" + id, nil
}
