package ember

import (
	"github.com/embervm/ember-go/abi"
)

// Tokenizable is implemented by types that know how to convert themselves
// to and from the codec's token representation. Generated bindings implement
// it for every contract type; bindings.Marshal and bindings.Unmarshal
// short-circuit through it before falling back to reflection.
type Tokenizable interface {
	ToToken() (abi.Token, error)
	FromToken(tok abi.Token) error
}
