package entities

// Token is one token id with its immutable URI and recorded supply. A token
// exists once minted; supply is written exactly once, at mint time.
type Token struct {
	TokenID     uint64
	URI         []byte
	TotalSupply uint64
}
