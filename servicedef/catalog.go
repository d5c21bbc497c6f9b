package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

type NFT struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Image       string        `json:"image"`
	Contract    string        `json:"contract"`
	ChainID     ldvalue.Value `json:"chainId"`
}

type NFTResponse struct {
	NFT *NFT `json:"nft"`
}

type Listing struct {
	ID          string        `json:"id"`
	NFTID       string        `json:"nftId"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Image       string        `json:"image"`
	Price       ldvalue.Value `json:"price"`
	Currency    string        `json:"currency"`
	Seller      string        `json:"seller"`
	Contract    string        `json:"contract"`
	ChainID     ldvalue.Value `json:"chainId"`
}

type ListingResponse struct {
	Listing *Listing `json:"listing"`
}
