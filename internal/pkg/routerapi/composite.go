package routerapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/internal/pkg/code"
	"github.com/wanoverlay/manager/internal/pkg/configgen"
)

// Identity is what test_connection reads back from the device.
type Identity struct {
	Name            string `json:"name"`
	RouterOSVersion string `json:"version"`
}

// TestConnection connects, reads the device identity and OS version, and
// returns them. A classified connect error (auth-failed, unreachable,
// timeout) propagates unchanged.
func (c *Client) TestConnection(ctx context.Context) (Identity, error) {
	_, body, err := c.do(ctx, http.MethodPost, "/system/identity", nil)
	if err != nil {
		return Identity{}, err
	}
	var id Identity
	if err := json.Unmarshal(body, &id); err != nil {
		return Identity{}, errors.WithCode(code.ErrRouterProtocolError, "decode identity response: %v", err)
	}
	return id, nil
}

// ManagedResources is the set of managed resources on a router, one list
// per family.
type ManagedResources map[string][]Resource

// GetManagedResources lists every family, filtered to resources whose
// comment begins with the ownership prefix.
func (c *Client) GetManagedResources(ctx context.Context) (ManagedResources, error) {
	out := make(ManagedResources, len(AllFamilies))
	for _, family := range AllFamilies {
		all, err := c.List(ctx, family, configgen.OwnershipPrefix)
		if err != nil {
			return nil, err
		}
		var managed []Resource
		for _, r := range all {
			if isManaged(r) {
				managed = append(managed, r)
			}
		}
		out[family] = managed
	}
	return out, nil
}

func isManaged(r Resource) bool {
	c := r.Comment()
	return len(c) >= len(configgen.OwnershipPrefix) && c[:len(configgen.OwnershipPrefix)] == configgen.OwnershipPrefix
}

// RemoveManagedResources deletes every managed resource in the fixed
// order NAT → firewall → routes → addresses → peers → interface. The
// order is load-bearing (see AllFamilies). Foreign resources (comment
// not starting with the ownership prefix) are never touched. Idempotent:
// removing an already-clean router succeeds.
func (c *Client) RemoveManagedResources(ctx context.Context) error {
	for _, family := range AllFamilies {
		resources, err := c.List(ctx, family, configgen.OwnershipPrefix)
		if err != nil {
			return err
		}
		for _, r := range resources {
			if !isManaged(r) {
				continue
			}
			if err := c.Delete(ctx, family, r.ID()); err != nil {
				return err
			}
		}
	}
	return nil
}

// RunScript executes a script payload through the device's script-exec
// surface. Per spec §9's open question, this path is vendor-dependent
// and fragile; callers (notably Revert) must treat its absence as a
// distinct, clearly-reported failure rather than falling back to
// structured CRUD, since stored script text may not be idempotent.
func (c *Client) RunScript(ctx context.Context, script string) error {
	status, _, err := c.do(ctx, http.MethodPost, "/system/script", map[string]string{"source": script})
	if err != nil {
		return err
	}
	if status == http.StatusNotImplemented {
		return errors.WithCode(code.ErrRouterScriptExecUnavailable, "managed device has no script-exec surface")
	}
	return nil
}
