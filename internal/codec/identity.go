package codec

import (
	"encoding/base64"
	"strings"

	"github.com/Makepad-fr/bingo/internal/model"
)

// IdentityLength is how many characters of the encoded content make up a
// card identity.
const IdentityLength = 10

// DeriveIdentity returns the card identity of entries: the sorted values
// joined by "|", base64 encoded and cut to IdentityLength characters.
//
// Unlike Encode this uses the standard padded alphabet, matching the keys
// cards were already saved under. The identity is never decoded, only
// compared, so '+' and '/' in it are harmless.
//
// The result does not depend on entry order. It is NOT collision free:
// ten base64 characters cover only the first seven bytes of the joined
// text, so any two sets whose smallest entries share a seven byte prefix
// get the same identity and therefore share saved marks. This is a known
// limitation; widening the identity would orphan every saved card.
func DeriveIdentity(entries model.Entries) string {
	joined := strings.Join(entries.Sorted(), "|")
	enc := base64.StdEncoding.EncodeToString([]byte(joined))
	if len(enc) > IdentityLength {
		enc = enc[:IdentityLength]
	}
	return enc
}
