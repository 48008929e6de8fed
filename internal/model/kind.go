package model

// StrategyKind identifies one of the three basket strategies.
// Keep these values stable; they are used in CSV headers and API payloads.
type StrategyKind string

const (
	KindFullAsset   StrategyKind = "full_asset"
	KindStaticSplit StrategyKind = "static_split"
	KindRebalanced  StrategyKind = "rebalanced_split"
)

// Kinds lists the strategies in display order.
var Kinds = []StrategyKind{KindFullAsset, KindStaticSplit, KindRebalanced}
