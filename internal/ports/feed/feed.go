package feed

import (
	followerPort "yatube/internal/ports/follower"
	groupPort "yatube/internal/ports/group"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"
)

// GroupFeedDTO is one page of a group's posts.
type GroupFeedDTO struct {
	Group *groupPort.GroupDTO
	Feed  *postPort.FeedPage
}

// ProfileDTO is one page of an author's posts with their follow state.
type ProfileDTO struct {
	Author *userPort.UserDTO
	Feed   *postPort.FeedPage
	// Following reports whether the viewer follows Author.
	Following bool
	Stats     *followerPort.FollowStatsDTO
}
