package reconcile

import "context"

// VerifyMAC reports whether a portal accepts mac for account. The account's
// MAC and session token are restored before returning.
func VerifyMAC(ctx context.Context, adapter PortalAdapter, account *Account, mac string) bool {
	if account == nil || adapter == nil {
		return false
	}

	originalMAC, originalToken := account.MAC, account.Token
	defer func() {
		account.MAC = originalMAC
		account.Token = originalToken
	}()

	account.MAC = mac
	account.Token = ""
	if err := adapter.Handshake(ctx, account); err != nil || !account.IsConnected() {
		return false
	}

	categories, err := adapter.ListCategories(ctx, account)
	return err == nil && len(categories) > 0
}
