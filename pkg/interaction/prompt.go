// pkg/interaction/prompt.go

package interaction

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// PromptInput displays a prompt and reads user input, returning a default
// when the user just presses enter.
func PromptInput(prompt, defaultVal string) string {
	reader := bufio.NewReader(os.Stdin)
	if defaultVal != "" {
		fmt.Printf("%s [%s]: ", prompt, defaultVal)
	} else {
		fmt.Printf("%s: ", prompt)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	return input
}

// PromptSelect displays numbered options and returns the selected index
// (0-based). It keeps asking until a valid number is entered.
func PromptSelect(prompt string, options []string) int {
	fmt.Println(prompt)
	for i, option := range options {
		fmt.Printf("  %d) %s\n", i+1, option)
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("Enter choice: ")
		choice, err := reader.ReadString('\n')
		if err != nil {
			// Closed stdin would loop forever; fall back to the first option.
			zap.L().Error("Failed to read choice, defaulting to first option", zap.Error(err))
			return 0
		}
		choice = strings.TrimSpace(choice)

		idx, err := strconv.Atoi(choice)
		if err == nil && idx >= 1 && idx <= len(options) {
			return idx - 1
		}

		fmt.Println("Invalid selection. Please try again.")
	}
}

// PromptYesNo asks a yes/no question and returns true/false. Falls back to
// the default on unrecognized input.
func PromptYesNo(prompt string, defaultYes bool) bool {
	defPrompt := "Y/n"
	if !defaultYes {
		defPrompt = "y/N"
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [%s]: ", prompt, defPrompt)
	input, err := reader.ReadString('\n')
	if err != nil {
		return defaultYes
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return defaultYes
	}
}

// ReadLine reads one line from r after printing a label. Only the line
// terminator is stripped: confirmation phrases compare exactly, so leading
// and trailing spaces must survive.
func ReadLine(r io.Reader, label string) (string, error) {
	fmt.Printf("%s: ", label)
	reader := bufio.NewReader(r)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
