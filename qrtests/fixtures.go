package qrtests

import (
	"fmt"
	"math"
	"strings"

	"github.com/novatok/qrhub-contract-tests/servicedef"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// testWalletAddress is a well-formed address that is not expected to hold funds.
const testWalletAddress = "0x742d35Cc6634C0532925a3b8D4C9db96C4b4d4d4"

// Fixtures generates request payloads. Names and amounts come from a seeded faker, so a run
// with the same seed sends the same values; emails are always unique.
type Fixtures struct {
	faker       *gofakeit.Faker
	emailDomain string
}

func NewFixtures(faker *gofakeit.Faker, emailDomain string) *Fixtures {
	return &Fixtures{faker: faker, emailDomain: emailDomain}
}

// NewEmail returns an address that has never been registered.
func (f *Fixtures) NewEmail() string {
	return fmt.Sprintf("test-%s@%s", strings.ReplaceAll(uuid.NewString(), "-", "")[:8], f.emailDomain)
}

func (f *Fixtures) price(min, max float64) float64 {
	return math.Round(f.faker.Price(min, max)*100) / 100
}

// QRCode returns a valid creation payload for the given type.
func (f *Fixtures) QRCode(qrType string) servicedef.CreateQRParams {
	var name string
	var config ldvalue.Value
	switch qrType {
	case servicedef.QRTypeFiat:
		name = "Test Fiat Payment"
		config = ldvalue.ObjectBuild().
			Set("amount", ldvalue.Float64(f.price(1, 100))).
			Set("currency", ldvalue.String("usd")).
			Set("productName", ldvalue.String(f.faker.ProductName())).
			Build()
	case servicedef.QRTypeCrypto:
		name = "Test Crypto Payment"
		config = ldvalue.ObjectBuild().
			Set("walletAddress", ldvalue.String(testWalletAddress)).
			Set("currency", ldvalue.String("ETH")).
			Set("amount", ldvalue.Float64(0.01)).
			Build()
	case servicedef.QRTypeNova:
		name = "Test NOVA Payment"
		config = ldvalue.ObjectBuild().
			Set("walletAddress", ldvalue.String(testWalletAddress)).
			Set("amount", ldvalue.Int(f.faker.Number(10, 1000))).
			Build()
	case servicedef.QRTypeNFTMint:
		name = "Test NFT Mint"
		config = ldvalue.ObjectBuild().
			Set("nftName", ldvalue.String(f.faker.ProductName()+" Collection")).
			Set("description", ldvalue.String("Test NFT for minting")).
			Set("price", ldvalue.Float64(0.05)).
			Build()
	case servicedef.QRTypeNFTListing:
		name = "Test NFT Listing"
		config = ldvalue.ObjectBuild().
			Set("listingId", ldvalue.String("listing-"+f.faker.DigitN(3))).
			Set("price", ldvalue.Float64(0.1)).
			Set("currency", ldvalue.String("ETH")).
			Build()
	case servicedef.QRTypeMultiOption:
		name = "Test Multi Option"
		config = ldvalue.ObjectBuild().
			Set("options", ldvalue.ArrayOf(
				ldvalue.ObjectBuild().
					Set("type", ldvalue.String(servicedef.QRTypeFiat)).
					Set("amount", ldvalue.Int(10)).
					Set("currency", ldvalue.String("usd")).
					Build(),
				ldvalue.ObjectBuild().
					Set("type", ldvalue.String(servicedef.QRTypeCrypto)).
					Set("amount", ldvalue.Float64(0.005)).
					Set("currency", ldvalue.String("ETH")).
					Build(),
			)).
			Build()
	default:
		name = "Test " + qrType
		config = ldvalue.ObjectBuild().Build()
	}
	return servicedef.CreateQRParams{Name: name, Type: qrType, DestinationConfig: config}
}

// NumberedFiatQRCode returns a fiat payload whose name and product carry the sequence number n.
func (f *Fixtures) NumberedFiatQRCode(n int) servicedef.CreateQRParams {
	return servicedef.CreateQRParams{
		Name: fmt.Sprintf("Test QR %d", n),
		Type: servicedef.QRTypeFiat,
		DestinationConfig: ldvalue.ObjectBuild().
			Set("amount", ldvalue.Float64(10)).
			Set("currency", ldvalue.String("usd")).
			Set("productName", ldvalue.String(fmt.Sprintf("Test Product %d", n))).
			Build(),
	}
}

// Event returns an analytics event payload of the given type.
func (f *Fixtures) Event(eventType string) servicedef.EventParams {
	return servicedef.EventParams{
		EventType: eventType,
		Country:   f.faker.CountryAbr(),
		UserAgent: f.faker.UserAgent(),
		Metadata: ldvalue.ObjectBuild().
			Set("test", ldvalue.Bool(true)).
			Set("event", ldvalue.String(eventType)).
			Build(),
	}
}

// Checkout returns a checkout request for a single product.
func (f *Fixtures) Checkout(qrSlug string) servicedef.CheckoutParams {
	return servicedef.CheckoutParams{
		Amount:      f.price(1, 100),
		Currency:    "usd",
		ProductName: f.faker.ProductName(),
		QRSlug:      qrSlug,
	}
}
