package crypto

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/cloudflare/golibs/lrucache"
	"github.com/gatekeep/Trident.RPC-sub004/exception"
	log "github.com/golang/glog"
)

var (
	NO_SUCH_GROUP = exception.New("No such DH group:")
)

// Oakley/MODP groups from RFC 2409 and RFC 3526. All use g = 2.
var modpGroups = map[string]string{
	"modp768":  "FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F14374FE1356D6D51C245E485B576625E7EC6F44C42E9A63A3620FFFFFFFFFFFFFFFF",
	"modp1024": "FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F14374FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7EDEE386BFB5A899FA5AE9F24117C4B1FE649286651ECE65381FFFFFFFFFFFFFFFF",
	"modp1536": "FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F14374FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7EDEE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163BF0598DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208552BB9ED529077096966D670C354E4ABC9804F1746C08CA237327FFFFFFFFFFFFFFFF",
	"modp2048": "FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F14374FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7EDEE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163BF0598DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208552BB9ED529077096966D670C354E4ABC9804F1746C08CA18217C32905E462E36CE3BE39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF6955817183995497CEA956AE515D2261898FA051015728E5A8AACAA68FFFFFFFFFFFFFFFF",
}

// Validated standard groups are immutable, so lookups share one
// instance per name instead of re-parsing and re-validating.
var groupCache = lrucache.NewLRUCache(uint(len(modpGroups)))

// StandardGroup returns the validated parameter set of a
// literature-standard MODP group ("modp768", "modp1024", "modp1536",
// "modp2048"). Repeated lookups of the same name return the shared
// instance.
func StandardGroup(name string) (*DHParameters, error) {
	key := strings.ToLower(name)
	if v, ok := groupCache.Get(key); ok {
		return v.(*DHParameters), nil
	}
	hexP, ok := modpGroups[key]
	if !ok {
		return nil, NO_SUCH_GROUP.Apply(name)
	}
	p, _ := new(big.Int).SetString(hexP, 16)
	params, err := NewDHParameters(p, big.NewInt(2))
	if err != nil {
		return nil, err
	}
	groupCache.Set(key, params, time.Time{})
	if log.V(LV_GROUP_CACHE) {
		log.Infof("DH group %s validated, fingerprint=%s", key, params.Fingerprint())
	}
	return params, nil
}

// StandardGroupNames lists the known group names, sorted lexically.
func StandardGroupNames() []string {
	names := make([]string, 0, len(modpGroups))
	for k := range modpGroups {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Fingerprint is the hex form of HashCode, for config files and logs.
func (d *DHParameters) Fingerprint() string {
	return fmt.Sprintf("%016x", d.HashCode())
}
