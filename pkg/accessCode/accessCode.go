package accessCode

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/samborkent/uuidv7"
)

// GenerateCode builds an opaque invite code for a tournament. The embedded
// uuid makes every generated code unique so a leaked code can be rotated
// without changing the tournament id.
func GenerateCode(tournamentID string) string {
	uniqueID := uuidv7.New()

	code := fmt.Sprintf("%s|%s", tournamentID, uniqueID.String())

	return base64.URLEncoding.EncodeToString([]byte(code))
}

// Decode splits an invite code back into the tournament id and the unique
// part.
func Decode(code string) (tournamentID, uniqueID string, err error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(code)
	if err != nil {
		return "", "", err
	}
	res := strings.Split(string(decodedBytes), "|")
	if len(res) != 2 {
		return "", "", fmt.Errorf("not correct format")
	}
	return res[0], res[1], nil
}
