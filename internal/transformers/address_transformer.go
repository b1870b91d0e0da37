package transformers

import (
	"regexp"
	"strings"

	"property-lookup/internal/models"
)

// SplitRule names the branch of the heuristic that produced a split.
type SplitRule string

const (
	RuleComma      SplitRule = "comma"
	RuleStateZip   SplitRule = "state_zip"
	RuleNoStateZip SplitRule = "no_state_zip"
	RuleShort      SplitRule = "short"
)

// minTokensForStateZip is the token count below which no state/zip split is attempted.
const minTokensForStateZip = 4

// stateZipPattern also accepts Unicode space separators such as NBSP between
// state and ZIP.
var stateZipPattern = regexp.MustCompile(`\b[A-Z]{2}[\s\p{Zs}]+\d{5}(-\d{4})?\b$`)

type addressTransformer struct{}

func NewAddressTransformer() AddressTransformer {
	return &addressTransformer{}
}

func (t *addressTransformer) ParseAddress(address string) (models.ParsedAddress, SplitRule) {
	return SplitAddressRule(address)
}

// SplitAddress splits a free-form address into ATTOM's address1/address2 pair.
func SplitAddress(address string) models.ParsedAddress {
	parsed, _ := SplitAddressRule(address)
	return parsed
}

// SplitAddressRule is SplitAddress that also reports which rule applied.
//
// Without a comma, only the single token before a trailing "ST 12345" is
// taken as the city, so "1 Main St Santa Monica CA 90405" yields
// address2 "Monica CA 90405". Callers that need multi-word cities must
// send a comma.
func SplitAddressRule(address string) (models.ParsedAddress, SplitRule) {
	if first, rest, found := strings.Cut(address, ","); found {
		return models.ParsedAddress{
			Address1: strings.TrimSpace(first),
			Address2: strings.TrimSpace(rest),
		}, RuleComma
	}

	if len(strings.Split(address, " ")) < minTokensForStateZip {
		return models.ParsedAddress{Address1: address}, RuleShort
	}

	match := stateZipPattern.FindString(address)
	if match == "" {
		return models.ParsedAddress{Address1: address}, RuleNoStateZip
	}

	splitIndex := strings.LastIndex(address, match)
	beforeState := strings.TrimSpace(address[:splitIndex])
	words := strings.Split(beforeState, " ")
	cityStart := strings.LastIndex(beforeState, words[len(words)-1])

	return models.ParsedAddress{
		Address1: strings.TrimSpace(address[:cityStart]),
		Address2: strings.TrimSpace(address[cityStart:]),
	}, RuleStateZip
}
