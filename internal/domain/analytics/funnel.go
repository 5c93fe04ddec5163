package analytics

// FunnelStage is the count of acquired units currently at one stage
type FunnelStage struct {
	Stage Status `json:"stage"`
	Count int    `json:"count"`
}

// ListingFunnel counts acquired units by current status into three stages,
// always emitted as [IN_STOCK, LISTED, SOLD]. LISTED, RESERVED and REPAIR all
// count as the LISTED stage.
func ListingFunnel(acquired []InventoryRecord) []FunnelStage {
	out := []FunnelStage{
		{Stage: StatusInStock},
		{Stage: StatusListed},
		{Stage: StatusSold},
	}
	for _, r := range acquired {
		switch r.Status {
		case StatusInStock:
			out[0].Count++
		case StatusSold:
			out[2].Count++
		default:
			out[1].Count++
		}
	}
	return out
}
