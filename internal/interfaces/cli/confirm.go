package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// confirm prompts for an explicit yes; anything else declines.
func confirm(prompt string) bool {
	fmt.Printf("%s (y/N): ", prompt)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
