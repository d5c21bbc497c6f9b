package qrtests

import (
	"net/http"
	"net/url"

	"github.com/novatok/qrhub-contract-tests/framework/apitest"
	"github.com/novatok/qrhub-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
)

func DoNFTTests(t *apitest.T) {
	c := requireContext(t)
	id := c.config.NFTID

	resp := call(t, "GET", "/nft/"+url.PathEscape(id), nil)
	requireStatus(t, resp, http.StatusOK)
	body := requireJSON(t, resp)
	requireKeys(t, body, "NFT response",
		"nft.id", "nft.name", "nft.description", "nft.image", "nft.contract", "nft.chainId")

	var result servicedef.NFTResponse
	requireDecode(t, resp, &result)
	assert.Equal(t, id, result.NFT.ID, "nft.id should echo the requested ID")
	assert.False(t, result.NFT.ChainID.IsNull(), "nft.chainId")
}

func DoMarketplaceTests(t *apitest.T) {
	c := requireContext(t)
	id := c.config.ListingID

	resp := call(t, "GET", "/marketplace/"+url.PathEscape(id), nil)
	requireStatus(t, resp, http.StatusOK)
	body := requireJSON(t, resp)
	requireKeys(t, body, "listing response",
		"listing.id", "listing.nftId", "listing.name", "listing.description", "listing.image",
		"listing.price", "listing.currency", "listing.seller", "listing.contract", "listing.chainId")

	var result servicedef.ListingResponse
	requireDecode(t, resp, &result)
	assert.Equal(t, id, result.Listing.ID, "listing.id should echo the requested ID")
	assert.True(t, result.Listing.Price.IsNumber() || result.Listing.Price.IsString(),
		"listing.price should be a number or a decimal string, was %s", result.Listing.Price.JSONString())
	assert.NotEmpty(t, result.Listing.Currency)
}
