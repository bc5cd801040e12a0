package util
import (
	"os"
	"fmt"
	"bufio"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// prompt the user for a single line of text. when stdin is a pipe,
// the prompt is skipped and the line is read as is.
func ReadText( prompt string ) (string, error) {
	if term.IsTerminal( int(syscall.Stdin) ) {
		fmt.Print( prompt )
	}
	reader := bufio.NewReader( os.Stdin )
	line, err := reader.ReadString( '\n' )
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight( line, "\r\n" ), nil
}
