package services

import (
	"sort"

	"github.com/Dosada05/football-api/models"
	"github.com/Dosada05/football-api/storage"
)

func populatePlayerPhotoURL(player *models.Player, uploader storage.FileUploader) {
	if player == nil || player.PhotoKey == "" || uploader == nil {
		return
	}
	url := uploader.GetPublicURL(player.PhotoKey)
	if url != "" {
		player.PhotoURL = &url
	}
}

// uniqueIDs drops duplicates while keeping first-seen order.
func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// diffIDs returns the ids to add to and remove from current so that it
// becomes desired. Both results are sorted.
func diffIDs(current, desired []int) (toAdd, toRemove []int) {
	cur := make(map[int]struct{}, len(current))
	for _, id := range current {
		cur[id] = struct{}{}
	}
	want := make(map[int]struct{}, len(desired))
	for _, id := range desired {
		want[id] = struct{}{}
	}

	toAdd = make([]int, 0)
	for id := range want {
		if _, ok := cur[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	toRemove = make([]int, 0)
	for id := range cur {
		if _, ok := want[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}
	sort.Ints(toAdd)
	sort.Ints(toRemove)
	return toAdd, toRemove
}
