package util
import (
	"os"
	"fmt"
	"strconv"
	"encoding/base64"

	"tvcrypt/cryptography"
)

/*
 * user-facing commands which are not about images at all:
 * reading the (possibly encrypted) log and generating a salt
 * for the log password.
 */
func ReadLog( logFile string, li *LoggerInfo ) error {

	data, err := os.ReadFile( logFile )
	if err != nil {
		return err
	}

	if li.IsEncrypted == false {
		fmt.Println( string(data) )
		return nil
	}

	pass, saltBytes, err := cryptography.SplitWithSalt( li.Password )
	if err != nil {
		return fmt.Errorf("Failed to parse log password: %s", err.Error())
	}
	key := cryptography.DeriveKey( pass, saltBytes )
	logs, err := cryptography.Decrypt( data, key )
	if err != nil {
		// the file may have been written before encryption was enabled,
		// checking for plaintext
		strLogs := string(data)
		for _, run := range strLogs {
			if strconv.IsPrint( run ) == false && run != '\n' && run != '\t' {
				return fmt.Errorf("Failed to decrypt logs: invalid password?")
			}
		}
		fmt.Println( strLogs )
		return nil
	}
	fmt.Println( string(logs) )
	return nil
}

func GenSalt() error {
	saltBytes, err := cryptography.GenRandom( cryptography.SaltSize )
	if err != nil {
		return err
	}
	saltStr := base64.StdEncoding.EncodeToString( saltBytes )
	fmt.Println("[+] Generated salt:", saltStr)
	return nil
}
