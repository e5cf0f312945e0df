package tokenloader

import "smartaccount_playground/internal/domain/entity"

// builtinTokens is the default registry, in display order.
var builtinTokens = map[entity.Network][]entity.TokenInfo{ //nolint:gochecknoglobals
	entity.NetworkBase: {
		{Address: entity.NativeTokenAddress, Symbol: "ETH", Name: "Ethereum", Decimals: 18, LogoURL: "/icons/eth.svg", PriceID: "ethereum"},
		{Address: "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", Symbol: "USDC", Name: "USD Coin", Decimals: 6, LogoURL: "/icons/usdc.svg", PriceID: "usd-coin"},
		{Address: "0x4200000000000000000000000000000000000006", Symbol: "WETH", Name: "Wrapped Ether", Decimals: 18, LogoURL: "/icons/weth.svg", PriceID: "weth"},
		{Address: "0x50c5725949A6F0c72E6C4a641F24049A917DB0Cb", Symbol: "DAI", Name: "Dai Stablecoin", Decimals: 18, LogoURL: "/icons/dai.svg", PriceID: "dai"},
		{Address: "0xcbb7c0000ab88b473b1f5afd9ef808440eed33bf", Symbol: "cbBTC", Name: "Coinbase Wrapped BTC", Decimals: 8, LogoURL: "/icons/cbbtc.webp", PriceID: "coinbase-wrapped-btc"},
		{Address: "0xd9AA094a6195E209aA0aE1aA099a5A46eDD4C716", Symbol: "USDT", Name: "Tether USD", Decimals: 6, LogoURL: "/icons/usdt.svg", PriceID: "tether"},
	},
	entity.NetworkBaseSepolia: {
		{Address: entity.NativeTokenAddress, Symbol: "ETH", Name: "Ethereum", Decimals: 18, LogoURL: "/icons/eth.svg"},
		{Address: "0x036cbd53842c5426634e7929541ec2318f3dcf7e", Symbol: "USDC", Name: "USD Coin", Decimals: 6, LogoURL: "/icons/usdc.svg"},
		{Address: "0xcbb7c0006f23900c38eb856149f799620fcb8a4a", Symbol: "cbBTC", Name: "Coinbase Wrapped BTC", Decimals: 8, LogoURL: "/icons/cbbtc.webp"},
		{Address: "0x808456652fdb597867f38412077A9182bf77359F", Symbol: "EURC", Name: "EURO Coin", Decimals: 6, LogoURL: "/icons/eurc.svg"},
	},
}
