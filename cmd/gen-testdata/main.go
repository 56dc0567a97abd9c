// Command gen-testdata writes a synthetic One File Per Actor corpus for
// benchmarking and integration testing. Packages are sharded the way the
// engine lays out __ExternalActors__ trees: a one-character directory, a
// two-character directory, then a base36 leaf name.
package main

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alexflint/go-arg"
	"lukechampine.com/frand"

	unrealnames "github.com/Jus2Cat/unreal-git-names"
	"github.com/Jus2Cat/unreal-git-names/internal/testutil"
)

type runArgs struct {
	OutDir     string  `arg:"positional" default:"testdata/corpus" help:"directory to write packages into"`
	Count      int     `arg:"--count" default:"2000" help:"number of packages to generate"`
	Seed       string  `arg:"--seed" help:"seed for reproducible corpora (empty = random)"`
	Versions   string  `arg:"--versions" default:"5_3,5_4,5_5" help:"comma-separated subdirectories to spread packages over"`
	WideFrac   float64 `arg:"--wide-frac" default:"0.15" help:"fraction of labels stored as UTF-16"`
	FolderFrac float64 `arg:"--folder-frac" default:"0.2" help:"fraction of packages carrying a FolderLabel instead of an ActorLabel"`
	MissFrac   float64 `arg:"--miss-frac" default:"0.05" help:"fraction of packages without any label tag"`
}

func (runArgs) Description() string {
	return "Generate a synthetic .uasset corpus."
}

func (runArgs) Version() string {
	return "gen-testdata " + unrealnames.Version
}

var (
	mapNames    = []string{"Downtown", "Hangar", "Island", "Warehouse", "Lobby"}
	actorBases  = []string{"Door", "Wall", "Lamp", "SM_Rock", "BP_Spawner", "PointLight", "TriggerVolume", "SM_Crate"}
	folderBases = []string{"Lighting", "Props", "Gameplay/Triggers", "Architecture", "Audio/Ambient"}
	wideBases   = []string{"Дверь", "Стена", "ライト", "扉", "Свет"}

	fillerNames = []string{
		"/Script/Engine", "StaticMeshActor", "StaticMeshComponent",
		"RootComponent", "SceneComponent", "PointLightComponent",
		"BodyInstance", "RelativeLocation", "RelativeRotation",
		"AttachParent", "bHidden", "Mobility", "UCSModifiedProperties",
		"BlueprintCreatedComponents",
	}
)

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

type stringSet map[string]struct{}

func (set stringSet) Contains(s string) bool {
	_, ok := set[s]
	return ok
}

func (set stringSet) Add(s string) {
	set[s] = struct{}{}
}

func main() {
	var args runArgs
	p := arg.MustParse(&args)
	if args.Count < 0 {
		p.Fail("--count must be >= 0")
	}

	rng := newRNG(args.Seed)
	versions := strings.Split(args.Versions, ",")
	seen := make(stringSet)

	var wide, folder, missing int
	for range args.Count {
		var leaf string
		for {
			leaf = externalName(rng)
			if !seen.Contains(leaf) {
				seen.Add(leaf)
				break
			}
		}

		a, isWide, isFolder, isMiss := randomAsset(rng, leaf, args)
		if isWide {
			wide++
		}
		if isFolder {
			folder++
		}
		if isMiss {
			missing++
		}

		version := versions[rng.Intn(len(versions))]
		dir := filepath.Join(args.OutDir, version, leaf[:1], leaf[1:3])
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		path := filepath.Join(dir, leaf[3:]+".uasset")
		if err := os.WriteFile(path, a.Build(), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Wrote %d packages to %s (%d wide, %d folder, %d unlabelled)\n",
		args.Count, args.OutDir, wide, folder, missing)
}

func newRNG(seed string) *frand.RNG {
	if seed == "" {
		return frand.New()
	}
	sum := sha256.Sum256([]byte(seed))
	return frand.NewCustom(sum[:], 32, 12)
}

// externalName returns a 25-character base36 leaf, the width of a
// base36-encoded object GUID.
func externalName(rng *frand.RNG) string {
	var sb [25]byte
	for i := range sb {
		sb[i] = base36[rng.Intn(len(base36))]
	}
	return string(sb[:])
}

func pick(rng *frand.RNG, pool []string) string {
	return pool[rng.Intn(len(pool))]
}

func randomAsset(rng *frand.RNG, leaf string, args runArgs) (a testutil.Asset, isWide, isFolder, isMiss bool) {
	isFolder = rng.Float64() < args.FolderFrac
	isMiss = rng.Float64() < args.MissFrac

	token := "ActorLabel"
	label := fmt.Sprintf("%s_%02d", pick(rng, actorBases), rng.Intn(100))
	if isFolder {
		token = "FolderLabel"
		label = pick(rng, folderBases)
	} else if rng.Float64() < args.WideFrac {
		isWide = true
		label = fmt.Sprintf("%s_%02d", pick(rng, wideBases), rng.Intn(100))
	}

	table := slices.Clone(fillerNames)
	rng.Shuffle(len(table), func(i, j int) { table[i], table[j] = table[j], table[i] })
	table = table[:6+rng.Intn(len(table)-5)]

	names := append([]string{"None", "Package", "PackageMetaData"}, table...)
	names = append(names, fmt.Sprintf("%s_C_%d", pick(rng, actorBases), rng.Intn(50)))

	insert := func(s string) int {
		i := 1 + rng.Intn(len(names))
		names = slices.Insert(names, i, s)
		return i
	}
	// Each insert shifts previously recorded indices at or past its slot.
	typeIdx := insert("StrProperty")
	labelIdx := insert(token)
	if typeIdx >= labelIdx {
		typeIdx++
	}

	var wideNames []int
	if rng.Float64() < 0.1 {
		wideNames = append(wideNames, insert("Статуя_База"))
		if wideNames[0] <= labelIdx {
			labelIdx++
		}
		if wideNames[0] <= typeIdx {
			typeIdx++
		}
	}

	a = testutil.Asset{
		PackageName: fmt.Sprintf("/Game/__ExternalActors__/%s/%s/%s/%s",
			pick(rng, mapNames), leaf[:1], leaf[1:3], leaf[3:]),
		Names:      names,
		LabelIndex: labelIdx,
		TypeIndex:  typeIdx,
		LabelText:  label,
		WideLabel:  isWide,
		WideNames:  wideNames,
		OmitTag:    isMiss,
		TagGap:     8,
		Trailer:    rng.Bytes(256 + rng.Intn(4096)),
	}

	if rng.Intn(2) == 0 {
		a.ExtraWords = true
		a.Extras = make([]int32, len(names))
		for i := range a.Extras {
			if rng.Intn(4) > 0 {
				v := int32(600 + rng.Intn(1<<24))
				if rng.Intn(2) == 0 {
					v = -v
				}
				a.Extras[i] = v
			}
		}
	}
	if rng.Intn(3) == 0 {
		a.HeaderPad = 16 + rng.Intn(64)
	}
	if !isMiss && !isFolder && rng.Float64() < 0.05 {
		a.Duplicate = fmt.Sprintf("%s_%02d", pick(rng, actorBases), rng.Intn(100))
	}
	return a, isWide, isFolder, isMiss
}
