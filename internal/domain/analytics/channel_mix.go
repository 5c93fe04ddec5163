package analytics

// ChannelShare is one channel's share of sold revenue
type ChannelShare struct {
	Channel    Channel `json:"channel"`
	UnitsSold  int     `json:"units_sold"`
	Revenue    int64   `json:"revenue"`
	Percentage float64 `json:"percentage"`
}

// ChannelMix sums sold revenue per channel. Only channels with at least one
// sale appear, in AllChannels order. Percentages are 0 when total revenue is 0.
func ChannelMix(sold []InventoryRecord) []ChannelShare {
	byChannel := make(map[Channel]*ChannelShare)
	var total int64
	for _, r := range sold {
		share, ok := byChannel[r.Channel]
		if !ok {
			share = &ChannelShare{Channel: r.Channel}
			byChannel[r.Channel] = share
		}
		share.UnitsSold++
		share.Revenue += r.Price
		total += r.Price
	}

	out := make([]ChannelShare, 0, len(byChannel))
	for _, c := range AllChannels() {
		share, ok := byChannel[c]
		if !ok {
			continue
		}
		share.Percentage = Percentage(share.Revenue, total)
		out = append(out, *share)
	}
	return out
}
