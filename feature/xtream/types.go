package xtream

// xcCategory is one row of get_*_categories.
type xcCategory struct {
	CategoryID   any `json:"category_id"`
	CategoryName any `json:"category_name"`
	ParentID     any `json:"parent_id"`
}

// xcStream is one row of get_live_streams. Panels disagree on whether ids
// are numbers or strings, so everything is decoded loosely.
type xcStream struct {
	Num                any `json:"num"`
	Name               any `json:"name"`
	StreamID           any `json:"stream_id"`
	StreamIcon         any `json:"stream_icon"`
	EPGChannelID       any `json:"epg_channel_id"`
	CategoryID         any `json:"category_id"`
	ContainerExtension any `json:"container_extension"`
}
