package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/diillson/cf-analytics-report/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(w io.Writer) {
	banner := `
   ____ _____      _                _       _   _
  / ___|  ___|    / \   _ __   __ _| |_   _| |_(_) ___ ___
 | |   | |_      / _ \ | '_ \ / _' | | | | | __| |/ __/ __|
 | |___|  _|    / ___ \| | | | (_| | | |_| | |_| | (__\__ \
  \____|_|     /_/   \_\_| |_|\__,_|_|\__, |\__|_|\___|___/
                                      |___/
        `
	orange := color.New(color.FgYellow, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Fprintln(w, orange(banner))

	formattedVersion := version.FormatVersion()
	fmt.Fprintln(w, blue(fmt.Sprintf("Cloudflare Analytics Report CLI (v%s)", formattedVersion)))
}
