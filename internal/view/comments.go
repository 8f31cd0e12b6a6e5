package view

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/msomdec/interview-room/internal/domain"
	"github.com/msomdec/interview-room/internal/service"
)

// Element ids patched by the comment endpoints.
const (
	CommentDialogID  = "comment-dialog"
	DialogCommentsID = "dialog-comments"
	LiveCommentsID   = "live-comments"
	ToastsID         = "toasts"
)

// Stars renders rating filled stars out of five.
func Stars(rating int) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<span class="stars"`)
		h.attr("aria-label", strconv.Itoa(rating)+" of 5")
		h.raw(`>`)
		for i := domain.MinRating; i <= domain.MaxRating; i++ {
			if i <= rating {
				h.raw(`<span class="star star-filled">★</span>`)
			} else {
				h.raw(`<span class="star">☆</span>`)
			}
		}
		h.raw(`</span>`)
	})
}

// CommentList renders the previous comments into a container with the given
// id. The section is empty when there are no comments.
func CommentList(id string, data service.DialogData) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div`)
		h.attr("id", id)
		h.raw(` class="comments">`)
		if len(data.Comments) > 0 {
			h.raw(`<div class="comments-header"><h4>Previous Comments</h4><span class="badge">`)
			h.text(CommentCountLabel(len(data.Comments)))
			h.raw(`</span></div><ul class="comment-entries">`)
			for _, c := range data.Comments {
				h.component(commentEntry(c, data.Author(c)))
			}
			h.raw(`</ul>`)
		}
		h.raw(`</div>`)
	})
}

func commentEntry(c domain.Comment, author service.DisplayInfo) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<li class="comment"><div class="comment-meta"><span class="avatar">`)
		if author.Image != "" {
			h.raw(`<img`)
			h.attr("src", author.Image)
			h.attr("alt", author.Name)
			h.raw(`>`)
		} else {
			h.text(author.Initials)
		}
		h.raw(`</span><div><p class="comment-author">`)
		h.text(author.Name)
		h.raw(`</p><p class="comment-time">`)
		h.timestamp(c.CreatedAt)
		h.raw(`</p></div>`)
		h.component(Stars(c.Rating))
		h.raw(`</div><p class="comment-content">`)
		h.text(c.Content)
		h.raw(`</p></li>`)
	})
}

// CommentTrigger is the button that opens the comment dialog.
func CommentTrigger(interviewID int64) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<button class="btn btn-secondary"`)
		h.attr("data-on:click", "@get('"+dialogPath(interviewID)+"')")
		h.raw(`>Add Comment</button>`)
	})
}

// DialogSignals are the client signals the comment dialog binds to.
type DialogSignals struct {
	Open    bool   `json:"open"`
	Comment string `json:"comment"`
	Rating  string `json:"rating"`
}

// CommentDialog renders the dialog for d. Until both loads have resolved it
// renders an empty placeholder.
func CommentDialog(interviewID int64, d *service.CommentDialog) templ.Component {
	return component(func(h *htmlWriter) {
		data, ready := d.Ready()
		if !ready || d.State() == service.DialogClosed {
			h.raw(`<div`)
			h.attr("id", CommentDialogID)
			h.raw(`></div>`)
			return
		}

		h.raw(`<div`)
		h.attr("id", CommentDialogID)
		h.jsonAttr("data-signals", DialogSignals{Open: true, Comment: d.Draft(), Rating: strconv.Itoa(d.Rating())})
		h.raw(` data-show="$open" class="dialog" role="dialog" aria-labelledby="comment-dialog-title">`)
		h.raw(`<h3 id="comment-dialog-title">Interview Comment</h3>`)

		h.component(CommentList(DialogCommentsID, data))

		h.raw(`<label for="comment-rating">Rating</label><select id="comment-rating" data-bind:rating>`)
		for i := domain.MinRating; i <= domain.MaxRating; i++ {
			v := strconv.Itoa(i)
			h.raw(`<option`)
			h.attr("value", v)
			if i == d.Rating() {
				h.raw(` selected`)
			}
			h.raw(`>`)
			h.text(v + " of 5")
			h.raw(`</option>`)
		}
		h.raw(`</select>`)

		h.raw(`<label for="comment-content">Your Comment</label>`)
		h.raw(`<textarea id="comment-content" data-bind:comment placeholder="Share your detailed comment about the candidate...">`)
		h.text(d.Draft())
		h.raw(`</textarea>`)

		h.raw(`<div class="dialog-footer"><button class="btn btn-outline" data-on:click="$open = false">Cancel</button>`)
		h.raw(`<button class="btn"`)
		h.attr("data-on:click", "@post('"+dialogPath(interviewID)+"')")
		h.raw(`>Submit</button></div></div>`)
	})
}

func dialogPath(interviewID int64) string {
	return "/interviews/" + strconv.FormatInt(interviewID, 10) + "/comments/dialog"
}

func livePath(interviewID int64) string {
	return "/interviews/" + strconv.FormatInt(interviewID, 10) + "/comments/live"
}
