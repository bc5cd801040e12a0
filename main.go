package main
import (
	"os"
	"fmt"
	"flag"
	"errors"
	"io/fs"
	"strings"
	"path/filepath"

	"tvcrypt/util"
	"tvcrypt/config"
	"tvcrypt/stegano/img"
	"tvcrypt/stegano/column"
	stegutil "tvcrypt/stegano/util"
)

const (
	TvcryptFolder = ".tvcrypt"
	ConfigFilename = "config.yaml"
	LogFilename = "log.log"
)

// lossless containers the scheme can live in, in probing order
var carrierExtensions = []string{".png", ".bmp", ".qoi"}

func main() {

	if len( os.Args ) < 2 || os.Args[1] == "-h" || os.Args[1] == "--help" || os.Args[1] == "help" {
		help()
		return
	}

	// the only command which needs no configuration at all
	if os.Args[1] == "gensalt" {
		if err := util.GenSalt(); err != nil {
			fail( err )
		}
		return
	}

	home, err := os.UserHomeDir()
	if err != nil {
		fail( err )
	}
	folder := filepath.Join( home, TvcryptFolder )
	if _, err = os.ReadDir( folder ); err != nil {
		// folder unexistend, creating it.
		if err = os.Mkdir( folder, 0760 ); err != nil {
			fail( err )
		}
	}

	// if the application runs for the first time, write the defaults
	configFile := filepath.Join( folder, ConfigFilename )
	logFile := filepath.Join( folder, LogFilename )
	if _, err := os.Stat( configFile ); err != nil {
		if err = config.SaveConfig( configFile, config.DefaultConfig( logFile ) ); err != nil {
			fail( err )
		}
	}
	conf, err := config.LoadConfig( configFile )
	if err != nil {
		fail( err )
	}
	logger := util.NewLogger( &conf.Logger )

	switch os.Args[1] {
	case "embed":
		err = cmdEmbed( conf, logger, os.Args[2:] )
	case "extract":
		err = cmdExtract( conf, logger, os.Args[2:] )
	case "prepare":
		err = cmdPrepare( logger, os.Args[2:] )
	case "readlog":
		err = util.ReadLog( conf.Logger.Filename, &conf.Logger )
	default:
		help()
		os.Exit(1)
	}
	if err != nil {
		logger.LogError( err )
		fail( err )
	}
}

func cmdEmbed( conf *config.FullConfig, logger *util.Logger, args []string ) error {
	if len(args) < 1 {
		usage("embed <image> [-text T] [-black-bit 0|1] [-step N]")
	}
	flags := flag.NewFlagSet( "embed", flag.ExitOnError )
	text := flags.String( "text", "", "text to embed, prompted for when empty" )
	blackBit := flags.Int( "black-bit", int(conf.Stegano.BlackBit), "bit value represented by a black pixel" )
	step := flags.Int( "step", conf.Stegano.ColumnStep, "distance between sampled columns" )
	flags.Parse( args[1:] )
	checkBitParams( *blackBit, *step )

	stem, ext, err := resolveSource( args[0] )
	if err != nil {
		// the original treats a missing source as a usage error
		fmt.Println( err.Error() )
		os.Exit(1)
	}

	payload := *text
	if payload == "" {
		payload, err = util.ReadText( "Enter text to embed: " )
		if err != nil {
			return err
		}
	}
	payload = stegutil.FixUnicode( payload )

	src, err := img.Load( stem + ext )
	if err != nil {
		return err
	}

	fmt.Println("Lightening image...")
	lightened := column.Lighten( src )
	lightenedFile := stem + conf.Stegano.LightenedSuffix + ext
	if err = img.Save( lightenedFile, lightened ); err != nil {
		return err
	}

	fmt.Println("Embedding text...")
	encoded, err := column.Embed( lightened, []byte(payload), uint8(*blackBit), *step )
	if err != nil {
		return err
	}
	stegFile := stem + conf.Stegano.StegSuffix + ext
	if err = img.Save( stegFile, encoded ); err != nil {
		return err
	}
	fmt.Println("Saved stego image:", stegFile)

	if conf.Stegano.KeepLightened == false {
		if err := os.Remove( lightenedFile ); err != nil {
			fmt.Println("Warning: could not remove temporary file.")
		} else {
			fmt.Println("Temporary lightened file removed.")
		}
	}

	logger.LogInfo( fmt.Sprintf("embedded %d bytes into %s (black-bit %d, step %d)",
		len(payload), stegFile, *blackBit, *step) )
	return nil
}

func cmdExtract( conf *config.FullConfig, logger *util.Logger, args []string ) error {
	if len(args) < 1 {
		usage("extract <image> [-black-bit 0|1] [-step N]")
	}
	flags := flag.NewFlagSet( "extract", flag.ExitOnError )
	blackBit := flags.Int( "black-bit", int(conf.Stegano.BlackBit), "bit value represented by a black pixel" )
	step := flags.Int( "step", conf.Stegano.ColumnStep, "distance between sampled columns" )
	flags.Parse( args[1:] )
	checkBitParams( *blackBit, *step )

	stegFile, err := resolveSteg( args[0], conf.Stegano.StegSuffix )
	if err != nil {
		return err
	}

	fmt.Println("Extracting text from stego image...")
	encoded, err := img.Load( stegFile )
	if err != nil {
		return err
	}
	text, err := column.Extract( encoded, uint8(*blackBit), *step )
	if err != nil {
		return err
	}
	fmt.Println("---- Extracted text ----")
	fmt.Println( string(text) )
	fmt.Println("------------------------")

	logger.LogInfo( fmt.Sprintf("extracted %d bytes from %s (black-bit %d, step %d)",
		len(text), stegFile, *blackBit, *step) )
	return nil
}

func cmdPrepare( logger *util.Logger, args []string ) error {
	if len(args) < 1 {
		usage("prepare <file> [-width N]")
	}
	flags := flag.NewFlagSet( "prepare", flag.ExitOnError )
	width := flags.Uint( "width", 0, "target width in pixels, 0 keeps the original size" )
	flags.Parse( args[1:] )

	data, err := os.ReadFile( args[0] )
	if err != nil {
		return err
	}
	grid, err := img.Prepare( data, *width )
	if err != nil {
		return err
	}

	ext := filepath.Ext( args[0] )
	carrierFile := strings.TrimSuffix( args[0], ext ) + ".png"
	if carrierFile == args[0] {
		carrierFile = args[0] + ".png"
	}
	if err = img.Save( carrierFile, grid ); err != nil {
		return err
	}
	fmt.Println("Saved carrier image:", carrierFile)

	logger.LogInfo( fmt.Sprintf("prepared %s as carrier %s", args[0], carrierFile) )
	return nil
}

// accept either a full filename or a bare stem and probe the
// supported containers for it
func resolveSource( name string ) (string, string, error) {
	ext := strings.ToLower( filepath.Ext( name ) )
	for _, known := range carrierExtensions {
		if ext == known {
			if _, err := os.Stat( name ); err != nil {
				return "", "", fmt.Errorf("Source image does not exist: %s", name)
			}
			return strings.TrimSuffix( name, filepath.Ext( name ) ), filepath.Ext( name ), nil
		}
	}
	for _, known := range carrierExtensions {
		if _, err := os.Stat( name + known ); err == nil {
			return name, known, nil
		}
	}
	return "", "", fmt.Errorf("Source image does not exist: %s", name)
}

func resolveSteg( name string, suffix string ) (string, error) {
	ext := strings.ToLower( filepath.Ext( name ) )
	for _, known := range carrierExtensions {
		if ext == known {
			// a literal filename of the stego artifact
			return name, nil
		}
	}
	for _, known := range carrierExtensions {
		candidate := name + suffix + known
		if _, err := os.Stat( candidate ); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("Stego image not found: %s%s: %w", name, suffix, fs.ErrNotExist)
}

func checkBitParams( blackBit, step int ) {
	if blackBit != 0 && blackBit != 1 {
		usage("-black-bit must be 0 or 1")
	}
	if step < 1 {
		usage("-step must be a positive integer")
	}
}

func usage( line string ) {
	fmt.Println("Usage: ./tvcrypt", line)
	os.Exit(1)
}

// missing files are reported apart from everything else: there is no
// point retrying them without external intervention
func fail( err error ) {
	if errors.Is( err, fs.ErrNotExist ) {
		fmt.Println("File error:", err)
		os.Exit(2)
	}
	fmt.Println("Unexpected error:", err)
	os.Exit(3)
}

func help() {
	// todo: add a pretty help menu
	line := `Usage: ./tvcrypt <command> [arguments]

The following commands are supported:
	embed <image>		hide text inside an image (png, bmp or qoi)
	extract <image>		recover text from a stego image
	prepare <file>		convert any image into a lossless carrier
	readlog			read the log file
	gensalt			generate base64-encoded salt for the log password

Options for embed and extract:
	-text <text>		text to embed (embed only, prompted for when absent)
	-black-bit <0|1>	which bit value a black pixel stands for, default 0
	-step <n>		distance between sampled columns, default 2
`

	fmt.Printf("%s", line)
}
