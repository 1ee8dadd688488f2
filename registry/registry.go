// Package registry loads the two pieces of data spec.md names as static,
// process-wide external collaborators: the block-state palette and the
// pre-built registry/tag payloads the configuration subprotocol streams to
// a freshly joined client. Both load once from embedded assets via
// //go:embed, exposing read-only values — no module-scoped singleton is
// populated at import time; callers construct what they need explicitly,
// the way spec.md §9 asks ("never rely on import-time side effects").
package registry

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"

	jp "github.com/go-mclib/mcserver/java_protocol"
	ns "github.com/go-mclib/mcserver/net_structures"
)

//go:embed assets/palette.json assets/registries.json
var assets embed.FS

// Palette is the read-only block resource name -> state id mapping.
type Palette struct {
	byName map[string]int32
}

// StateID looks up the numeric state id for a block resource name.
func (p *Palette) StateID(name string) (int32, bool) {
	id, ok := p.byName[name]
	return id, ok
}

// LoadPalette decodes the embedded palette asset.
func LoadPalette() (*Palette, error) {
	raw, err := assets.ReadFile("assets/palette.json")
	if err != nil {
		return nil, fmt.Errorf("registry: read palette asset: %w", err)
	}
	var byName map[string]int32
	if err := json.Unmarshal(raw, &byName); err != nil {
		return nil, fmt.Errorf("registry: decode palette asset: %w", err)
	}
	return &Palette{byName: byName}, nil
}

// RawFrame is a pre-encoded (id, payload) pair. It deliberately has no
// dependency on the session package's Frame type — config converts these at
// send time — so registry stays a leaf package.
type RawFrame struct {
	ID      ns.VarInt
	Payload ns.ByteArray
}

// entryAsset is one registry entry as it appears in assets/registries.json.
type entryAsset struct {
	ID   string         `json:"id"`
	Data map[string]any `json:"data"`
}

// registryEntry mirrors the wire layout of one Registry Data entry:
// identifier, then an optional NBT blob. PrefixedArray's element contract
// requires an explicit ToBytes/FromBytes pair rather than the generic
// reflection path (the same convention net_structures.BlockEntity already
// follows for ChunkData.BlockEntities). Data is encoded only when HasData
// is set; LoadPush sets it on every entry.
type registryEntry struct {
	ID      ns.Identifier
	HasData ns.Boolean
	Data    ns.NBT
}

func (e registryEntry) ToBytes() (ns.ByteArray, error) {
	idBytes, err := e.ID.ToBytes()
	if err != nil {
		return nil, err
	}
	hasBytes, err := e.HasData.ToBytes()
	if err != nil {
		return nil, err
	}
	result := append(idBytes, hasBytes...)

	if bool(e.HasData) {
		dataBytes, err := e.Data.ToBytes()
		if err != nil {
			return nil, err
		}
		result = append(result, dataBytes...)
	}
	return result, nil
}

func (e *registryEntry) FromBytes(data ns.ByteArray) (int, error) {
	offset, err := e.ID.FromBytes(data)
	if err != nil {
		return 0, err
	}
	hasBytes, err := e.HasData.FromBytes(data[offset:])
	if err != nil {
		return 0, err
	}
	offset += hasBytes

	if bool(e.HasData) {
		dataBytes, err := e.Data.FromBytes(data[offset:])
		if err != nil {
			return 0, err
		}
		offset += dataBytes
	}
	return offset, nil
}

// registryData is the Registry Data (0x07) packet body.
type registryData struct {
	RegistryID ns.Identifier
	Entries    ns.PrefixedArray[registryEntry]
}

// Push is the decoded set of registry frames ready to stream to a client,
// plus the (currently empty) tag frame spec.md §4.E names as following them.
type Push struct {
	Frames []RawFrame
	Tags   RawFrame
}

const (
	// IDRegistryData is Registry Data (clientbound, configuration, 0x07).
	IDRegistryData ns.VarInt = 0x07
	// IDUpdateTags is Update Tags (clientbound, configuration, 0x0D).
	IDUpdateTags ns.VarInt = 0x0D
)

// LoadPush decodes assets/registries.json into one Registry Data frame per
// registry and a single, structurally valid but empty Update Tags frame —
// tag resolution against the palette is a non-goal-adjacent concern no demo
// component here needs (see DESIGN.md).
func LoadPush() (*Push, error) {
	raw, err := assets.ReadFile("assets/registries.json")
	if err != nil {
		return nil, fmt.Errorf("registry: read registries asset: %w", err)
	}

	var byRegistry map[string][]entryAsset
	if err := json.Unmarshal(raw, &byRegistry); err != nil {
		return nil, fmt.Errorf("registry: decode registries asset: %w", err)
	}

	regIDs := make([]string, 0, len(byRegistry))
	for regID := range byRegistry {
		regIDs = append(regIDs, regID)
	}
	sort.Strings(regIDs)

	push := &Push{}
	for _, regID := range regIDs {
		entries := byRegistry[regID]
		rd := registryData{RegistryID: ns.Identifier(regID)}
		for _, e := range entries {
			rd.Entries = append(rd.Entries, registryEntry{
				ID:      ns.Identifier(e.ID),
				HasData: true,
				Data:    ns.NewNBT(e.Data),
			})
		}
		payload, err := jp.PacketDataToBytes(&rd)
		if err != nil {
			return nil, fmt.Errorf("registry: encode %s: %w", regID, err)
		}
		push.Frames = append(push.Frames, RawFrame{ID: IDRegistryData, Payload: payload})
	}

	emptyTags, err := ns.VarInt(0).ToBytes()
	if err != nil {
		return nil, err
	}
	push.Tags = RawFrame{ID: IDUpdateTags, Payload: ns.ByteArray(emptyTags)}

	return push, nil
}
