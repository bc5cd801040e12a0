package config

import (
	"os"
	"gopkg.in/yaml.v3"

	"tvcrypt/util"
)

/*
 * Configuration for the steganography pipeline. These are only the
 * defaults for the command line, explicit flags always win.
 */
type SteganoConfig struct {
	// which bit value a black pixel stands for, 0 or 1
	BlackBit	uint8	`yaml:"black_bit"`

	// distance between sampled columns
	ColumnStep	int	`yaml:"column_step"`

	// naming convention for the produced artifacts:
	// <stem><suffix>.<ext>
	LightenedSuffix	string	`yaml:"lightened_suffix"`
	StegSuffix	string	`yaml:"steg_suffix"`

	// keep the lightened intermediate instead of removing it
	// after a successful embedding
	KeepLightened	bool	`yaml:"keep_lightened"`
}

/*
 * Full configuration of the tool.
 */
type FullConfig struct {
	Stegano	SteganoConfig	`yaml:"steganography_config"`
	Logger	util.LoggerInfo	`yaml:"logger_config"`
}

/*
 * Functions for loading and saving configuration in YAML format.
 * the file holds no secrets, so unlike the log it is stored in
 * plaintext.
 */
func LoadConfig( filename string ) (*FullConfig, error) {
	data, err := os.ReadFile( filename )
	if err != nil {
		return nil, err
	}

	var conf FullConfig
	if err := yaml.Unmarshal( data, &conf ); err != nil {
		return nil, err
	}
	return &conf, nil
}

func SaveConfig( filename string, c *FullConfig ) error {
	data, err := yaml.Marshal( *c )
	if err != nil {
		return err
	}
	return os.WriteFile( filename, data, 0600 )
}

func DefaultConfig( loggerFilename string ) *FullConfig {
	return &FullConfig{
		Stegano: SteganoConfig{
			BlackBit: 0,
			ColumnStep: 2,
			LightenedSuffix: "_lightened",
			StegSuffix: "_steg",
			KeepLightened: false,
		},
		Logger: util.LoggerInfo{
			Filename: loggerFilename,
			Password: "",
			IsEncrypted: false,
			IsColored: false,
			SaveTime: true,
			Mode: util.Error | util.Info,
		},
	}
}
