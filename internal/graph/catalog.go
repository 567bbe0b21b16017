package graph

import (
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/gitlanes/gitlanes/internal/config"
	"github.com/gitlanes/gitlanes/internal/models"
)

const (
	localPrefix  = "refs/heads/"
	remotePrefix = "refs/remotes/"
	refPrefix    = "refs/"
)

// unknownBranch names merge-derived candidates whose summary matches
// no extraction pattern.
const unknownBranch = "unknown"

// buildCatalog converts branch refs, merge commit summaries and tag
// refs into candidate branch records and sorts them into trace order.
//
// One shared counter rotates the color lists: it advances once per
// candidate, so repeated names cycle through their list
// deterministically. Candidates are sorted by persistence rank with
// real branches before merge-derived ones at equal rank; more
// persistent lines must claim shared history first. Tags are appended
// after the sort and always trace last.
func buildCatalog(commits []*Commit, indices map[string]int, refs []models.Ref, tags []models.Tag, settings *config.Settings) []Branch {
	candidates := make([]Branch, 0, len(refs)+len(tags))
	counter := 0

	for _, ref := range refs {
		name, ok := stripBranchName(ref)
		if !ok {
			continue
		}
		tip := none
		if idx, ok := indices[ref.Hash]; ok {
			tip = idx
		}
		counter++
		candidates = append(candidates, newBranch(
			ref.Hash, "", name,
			settings.Branches.PersistenceRank(name),
			ref.IsRemote, false, false,
			newVis(
				settings.Branches.OrderGroup(name),
				settings.Branches.TermColor(name, counter),
				settings.Branches.SVGColor(name, counter),
			),
			tip,
		))
	}

	// One candidate per merge commit, newest merge first.
	for idx, c := range commits {
		if !c.IsMerge || c.Info.Message == "" {
			continue
		}
		counter++
		name, ok := settings.MergeSummaryBranch(c.Info.Message)
		if !ok {
			name = unknownBranch
		}
		candidates = append(candidates, newBranch(
			c.Parents[1], c.Hash, name,
			settings.Branches.PersistenceRank(name),
			false, true, false,
			newVis(
				settings.Branches.OrderGroup(name),
				settings.Branches.TermColor(name, counter),
				settings.Branches.SVGColor(name, counter),
			),
			idx+1,
		))
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Persistence != candidates[j].Persistence {
			return candidates[i].Persistence < candidates[j].Persistence
		}
		return !candidates[i].IsMerged && candidates[j].IsMerged
	})

	for _, tag := range tags {
		name, ok := stripTagName(tag)
		if !ok {
			continue
		}
		tip, ok := indices[tag.Target]
		if !ok {
			continue
		}
		counter++
		candidates = append(candidates, newBranch(
			tag.Target, "", name,
			settings.Branches.TagRank(),
			false, false, true,
			newVis(
				settings.Branches.OrderGroup(name),
				settings.Branches.TermColor(name, counter),
				settings.Branches.SVGColor(name, counter),
			),
			tip,
		))
	}

	return candidates
}

func stripBranchName(ref models.Ref) (string, bool) {
	prefix := localPrefix
	if ref.IsRemote {
		prefix = remotePrefix
	}
	if !strings.HasPrefix(ref.Name, prefix) {
		slog.Warn("skipping branch ref without namespace prefix", slog.String("ref", ref.Name))
		return "", false
	}
	name := ref.Name[len(prefix):]
	if !utf8.ValidString(name) {
		slog.Warn("skipping branch ref with invalid name encoding", slog.String("ref", ref.Name))
		return "", false
	}
	return name, true
}

// stripTagName removes only the "refs/" prefix; tag names keep their
// "tags/" part in display.
func stripTagName(tag models.Tag) (string, bool) {
	if !strings.HasPrefix(tag.Name, refPrefix) {
		slog.Warn("skipping tag ref without namespace prefix", slog.String("ref", tag.Name))
		return "", false
	}
	name := tag.Name[len(refPrefix):]
	if !utf8.ValidString(name) {
		slog.Warn("skipping tag ref with invalid name encoding", slog.String("ref", tag.Name))
		return "", false
	}
	return name, true
}
