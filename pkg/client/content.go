package client

import (
	"context"
	"net/http"
	"net/url"

	"dstclan/internal/model"
)

var (
	vipQuery  = url.Values{"type": {model.ContentVip}}
	clanQuery = url.Values{"type": {model.ContentClan}}
)

// ContentClient VIP tiers and clan sections under /content
type ContentClient struct {
	c *Client
}

// VipTiers lists the VIP tiers
func (cc *ContentClient) VipTiers(ctx context.Context) ([]model.VipTier, error) {
	var out struct {
		VipTiers []model.VipTier `json:"vip_tiers"`
	}
	if err := cc.c.do(ctx, http.MethodGet, "/content", vipQuery, nil, &out); err != nil {
		return nil, err
	}
	return out.VipTiers, nil
}

// CreateVipTier adds a tier and returns its id
func (cc *ContentClient) CreateVipTier(ctx context.Context, tier model.VipTier) (int64, error) {
	if err := tier.Validate(); err != nil {
		return 0, err
	}
	var out idBody
	if err := cc.c.do(ctx, http.MethodPost, "/content", vipQuery, tier, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// UpdateVipTier replaces a tier
func (cc *ContentClient) UpdateVipTier(ctx context.Context, tier model.VipTier) error {
	if err := tier.Validate(); err != nil {
		return err
	}
	return cc.c.do(ctx, http.MethodPut, "/content", vipQuery, tier, nil)
}

// DeleteVipTier removes a tier
func (cc *ContentClient) DeleteVipTier(ctx context.Context, id int64) error {
	return cc.c.do(ctx, http.MethodDelete, "/content", vipQuery, model.IDRequest{ID: id}, nil)
}

// ClanSections lists the clan page sections
func (cc *ContentClient) ClanSections(ctx context.Context) ([]model.ClanSection, error) {
	var out struct {
		ClanInfo []model.ClanSection `json:"clan_info"`
	}
	if err := cc.c.do(ctx, http.MethodGet, "/content", clanQuery, nil, &out); err != nil {
		return nil, err
	}
	return out.ClanInfo, nil
}

// CreateClanSection adds a section and returns its id
func (cc *ContentClient) CreateClanSection(ctx context.Context, section model.ClanSection) (int64, error) {
	if err := section.Validate(); err != nil {
		return 0, err
	}
	var out idBody
	if err := cc.c.do(ctx, http.MethodPost, "/content", clanQuery, section, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// UpdateClanSection replaces a section
func (cc *ContentClient) UpdateClanSection(ctx context.Context, section model.ClanSection) error {
	if err := section.Validate(); err != nil {
		return err
	}
	return cc.c.do(ctx, http.MethodPut, "/content", clanQuery, section, nil)
}

// DeleteClanSection removes a section
func (cc *ContentClient) DeleteClanSection(ctx context.Context, id int64) error {
	return cc.c.do(ctx, http.MethodDelete, "/content", clanQuery, model.IDRequest{ID: id}, nil)
}
