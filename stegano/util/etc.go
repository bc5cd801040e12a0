package util
import (
	"golang.org/x/text/unicode/norm"
)

// normalize user input so a decomposed string does not silently
// embed differently than its composed twin.
func FixUnicode( in string ) string {
	return norm.NFC.String( in )
}
