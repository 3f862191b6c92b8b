package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"go.jetify.com/typeid/v2"
)

// IDGenerator produces record ids, transaction ids and voucher codes.
type IDGenerator interface {
	// NewID returns a unique record id.
	NewID() string

	// NewTransactionID returns a unique "txn_" prefixed transaction id.
	NewTransactionID() string

	// NewVoucherCode returns a unique code such as AMA-1F3C-09AB-77E2 whose
	// prefix is taken from the partner name.
	NewVoucherCode(partnerName string) string
}

type idGenerator struct{}

// NewIDGenerator creates the default generator: uuid record ids, typeid
// transaction ids and random hex voucher codes.
func NewIDGenerator() IDGenerator {
	return idGenerator{}
}

func (idGenerator) NewID() string {
	return uuid.NewString()
}

func (idGenerator) NewTransactionID() string {
	tid, err := typeid.Generate("txn")
	if err != nil {
		panic(fmt.Sprintf("service: generate transaction id: %v", err))
	}
	return tid.String()
}

func (idGenerator) NewVoucherCode(partnerName string) string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("service: read random bytes: %v", err))
	}
	h := strings.ToUpper(hex.EncodeToString(b))
	return fmt.Sprintf("%s-%s-%s-%s", VoucherPrefix(partnerName), h[:4], h[4:8], h[8:])
}

// VoucherPrefix returns the first three letters or digits of the partner
// name in upper case, or RWD when the name has none.
func VoucherPrefix(partnerName string) string {
	var b strings.Builder
	for _, r := range partnerName {
		if b.Len() == 3 {
			break
		}
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	if b.Len() == 0 {
		return "RWD"
	}
	return b.String()
}
