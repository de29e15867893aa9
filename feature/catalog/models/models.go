package models

import (
	"time"

	"catalog-sync/core/reconcile"
)

// Account represents the 'accounts' table.
type Account struct {
	ID           string    `gorm:"column:id;primaryKey;size:64" json:"id"`
	Name         string    `gorm:"column:name;size:255;not null" json:"name"`
	Kind         string    `gorm:"column:kind;size:32;not null" json:"kind"`
	Action       string    `gorm:"column:action;size:16;not null;default:itv" json:"action"`
	URL          string    `gorm:"column:url;size:1024" json:"url"`
	MAC          string    `gorm:"column:mac;size:32" json:"mac"`
	Username     string    `gorm:"column:username;size:255" json:"username"`
	Password     string    `gorm:"column:password;size:255" json:"-"`
	PlaylistPath string    `gorm:"column:playlist_path;size:1024" json:"playlist_path"`
	PauseCaching bool      `gorm:"column:pause_caching;not null;default:false" json:"pause_caching"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (Account) TableName() string {
	return "accounts"
}

// ToDomain converts the row to the account the reload engine works on.
// Action defaults to itv.
func (a Account) ToDomain() *reconcile.Account {
	action := reconcile.Action(a.Action)
	if action == "" {
		action = reconcile.ActionITV
	}
	return &reconcile.Account{
		ID:           a.ID,
		Name:         a.Name,
		Kind:         reconcile.Kind(a.Kind),
		Action:       action,
		URL:          a.URL,
		MAC:          a.MAC,
		Username:     a.Username,
		Password:     a.Password,
		PlaylistPath: a.PlaylistPath,
		PauseCaching: a.PauseCaching,
	}
}

// Category represents the 'categories' table: live categories of an account.
type Category struct {
	ID         uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AccountID  string `gorm:"column:account_id;size:64;not null;index" json:"account_id"`
	CategoryID string `gorm:"column:category_id;size:255" json:"category_id"`
	Title      string `gorm:"column:title;size:255" json:"title"`
	Alias      string `gorm:"column:alias;size:255" json:"alias"`
	Censored   bool   `gorm:"column:censored" json:"censored"`
	ActiveSub  bool   `gorm:"column:active_sub" json:"active_sub"`
}

// TableName overrides the table name.
func (Category) TableName() string {
	return "categories"
}

// ToDomain converts the row, carrying its primary key as DBID.
func (c Category) ToDomain() reconcile.Category {
	return reconcile.Category{
		DBID:       c.ID,
		CategoryID: c.CategoryID,
		Title:      c.Title,
		Alias:      c.Alias,
		Censored:   c.Censored,
		ActiveSub:  c.ActiveSub,
	}
}

// NewCategory builds a category row for account.
func NewCategory(accountID string, c reconcile.Category) Category {
	return Category{
		AccountID:  accountID,
		CategoryID: c.CategoryID,
		Title:      c.Title,
		Alias:      c.Alias,
		Censored:   c.Censored,
		ActiveSub:  c.ActiveSub,
	}
}

// Channel represents the 'channels' table. CategoryDBID references categories.id.
type Channel struct {
	ID               uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AccountID        string `gorm:"column:account_id;size:64;not null;index" json:"account_id"`
	CategoryDBID     uint   `gorm:"column:category_db_id;not null;index" json:"category_db_id"`
	ChannelID        string `gorm:"column:channel_id;size:255" json:"channel_id"`
	Name             string `gorm:"column:name;size:512" json:"name"`
	Number           string `gorm:"column:number;size:32" json:"number"`
	Cmd              string `gorm:"column:cmd;type:text" json:"cmd"`
	Cmd1             string `gorm:"column:cmd_1;type:text" json:"cmd_1,omitempty"`
	Cmd2             string `gorm:"column:cmd_2;type:text" json:"cmd_2,omitempty"`
	Cmd3             string `gorm:"column:cmd_3;type:text" json:"cmd_3,omitempty"`
	Logo             string `gorm:"column:logo;type:text" json:"logo,omitempty"`
	Censored         int    `gorm:"column:censored" json:"censored"`
	Status           int    `gorm:"column:status" json:"status"`
	HD               int    `gorm:"column:hd" json:"hd"`
	DrmType          string `gorm:"column:drm_type;size:64" json:"drm_type,omitempty"`
	DrmLicenseURL    string `gorm:"column:drm_license_url;type:text" json:"drm_license_url,omitempty"`
	ClearKeys        string `gorm:"column:clear_keys;type:text" json:"clear_keys,omitempty"`
	InputstreamAddon string `gorm:"column:inputstream_addon;size:128" json:"inputstream_addon,omitempty"`
	ManifestType     string `gorm:"column:manifest_type;size:32" json:"manifest_type,omitempty"`
}

// TableName overrides the table name.
func (Channel) TableName() string {
	return "channels"
}

// NewChannel builds a channel row saved under a category row.
func NewChannel(accountID string, categoryDBID uint, c reconcile.Channel) Channel {
	return Channel{
		AccountID:        accountID,
		CategoryDBID:     categoryDBID,
		ChannelID:        c.ChannelID,
		Name:             c.Name,
		Number:           c.Number,
		Cmd:              c.Cmd,
		Cmd1:             c.Cmd1,
		Cmd2:             c.Cmd2,
		Cmd3:             c.Cmd3,
		Logo:             c.Logo,
		Censored:         c.Censored,
		Status:           c.Status,
		HD:               c.HD,
		DrmType:          c.DrmType,
		DrmLicenseURL:    c.DrmLicenseURL,
		ClearKeys:        c.ClearKeys,
		InputstreamAddon: c.InputstreamAddon,
		ManifestType:     c.ManifestType,
	}
}

// ModeCategory holds the columns shared by the vod and series category tables.
type ModeCategory struct {
	ID         uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AccountID  string `gorm:"column:account_id;size:64;not null;index" json:"account_id"`
	CategoryID string `gorm:"column:category_id;size:255" json:"category_id"`
	Title      string `gorm:"column:title;size:255" json:"title"`
	Alias      string `gorm:"column:alias;size:255" json:"alias"`
	Censored   bool   `gorm:"column:censored" json:"censored"`
	ActiveSub  bool   `gorm:"column:active_sub" json:"active_sub"`
}

// VodCategory represents the 'vod_categories' table.
type VodCategory struct {
	ModeCategory
}

// TableName overrides the table name.
func (VodCategory) TableName() string {
	return "vod_categories"
}

// SeriesCategory represents the 'series_categories' table.
type SeriesCategory struct {
	ModeCategory
}

// TableName overrides the table name.
func (SeriesCategory) TableName() string {
	return "series_categories"
}

// NewModeCategory builds the shared columns of a vod or series row.
func NewModeCategory(accountID string, c reconcile.Category) ModeCategory {
	return ModeCategory{
		AccountID:  accountID,
		CategoryID: c.CategoryID,
		Title:      c.Title,
		Alias:      c.Alias,
		Censored:   c.Censored,
		ActiveSub:  c.ActiveSub,
	}
}

// All lists every catalog model, in migration order.
func All() []any {
	return []any{&Account{}, &Category{}, &Channel{}, &VodCategory{}, &SeriesCategory{}}
}
