package cli

import (
	"fmt"

	"github.com/diillson/campaign-attribution-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner() {
	banner := `
   ____                                  _               ____                       _   
  / ___|__ _ _ __ ___  _ __   __ _(_) __ _ _ __   |  _ \ ___ _ __   ___  _ __| |_ 
 | |   / _' | '_ ' _ \| '_ \ / _' | |/ _' | '_ \  | |_) / _ \ '_ \ / _ \| '__| __|
 | |__| (_| | | | | | | |_) | (_| | | (_| | | | | |  _ <  __/ |_) | (_) | |  | |_ 
  \____\__,_|_| |_| |_| .__/ \__,_|_|\__, |_| |_| |_| \_\___| .__/ \___/|_|   \__|
                      |_|            |___/                  |_|                   
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))
	fmt.Println(blue(fmt.Sprintf("Campaign Attribution Report CLI (v%s)", version.FormatVersion())))
}
