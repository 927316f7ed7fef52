package errs

import "fmt"

type Code string

const (
	NotInitialized  Code = "NOT_INITIALIZED"
	ShareWithJSON   Code = "SHARE_WITH_JSON"
	UnknownSetting  Code = "UNKNOWN_SETTING"
	InvalidInterval Code = "INVALID_INTERVAL"
	InvalidToggle   Code = "INVALID_TOGGLE"
)

var messages = map[Code]string{
	NotInitialized: `Not initialized: run the welcome step first

Usage:
  arbcheck init
  arbcheck %[1]s

Reason:
  Background checks only start once the welcome step has been accepted.`,

	ShareWithJSON: `Invalid flag combination: cannot use --share with --json

Usage:
  - Machine readable report:
      arbcheck check --json
  - Copy the share message:
      arbcheck check --share`,

	UnknownSetting: `Unknown setting %[1]q

Usage:
  arbcheck settings set interval <1|6|12|24>
  arbcheck settings set notifications <on|off>`,

	InvalidInterval: `Invalid interval %[1]q: allowed values are 1, 6, 12 or 24 hours

Usage:
  arbcheck settings set interval 6`,

	InvalidToggle: `Invalid value %[1]q: use on or off

Usage:
  arbcheck settings set notifications on`,
}

func Msg(code Code, a ...any) string {
	msg := messages[code]
	if msg == "" {
		msg = string(code)
	}
	return fmt.Sprintf(msg, a...)
}
