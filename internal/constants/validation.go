package constants

// Field Limits
const (
	MaxTextLength = 100
	MaxIDLength   = 4
	MinArrayItems = 1
	MaxArrayItems = 5
)

// Validation Patterns
const (
	textChars   = `A-Za-z0-9\x{00C0}-\x{017E}()/!?.,'&-`
	TextPattern = `^[` + textChars + `]+(?:\s[` + textChars + `]+)*$`
	IDPattern   = `^[1-9][0-9]*$`
	PagePattern = `^[1-9][0-9]{0,2}$`
)

// Validation Messages
const (
	MsgInvalidText = "should have only alphanumeric characters, spaces, and the symbols: ()/!?.,'&-"
	MsgInvalidID   = "should be a number 1-9999"
	MsgInvalidPage = "should be a number 1-999"
)

// Instrument types
var InstrumentTypes = []string{
	"Bowed string",
	"Plucked string",
	"Woodwind",
	"Brass",
	"Percussion",
	"Keyboard",
	"Other",
}
