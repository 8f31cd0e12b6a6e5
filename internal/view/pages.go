package view

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/msomdec/interview-room/internal/domain"
	"github.com/msomdec/interview-room/internal/service"
)

// HomePage renders the landing page.
func HomePage(sess *domain.Session) templ.Component {
	return Layout("Home", sess, component(func(h *htmlWriter) {
		h.raw(`<section class="hero"><h1>Interview Room</h1>`)
		if !sess.Authenticated() {
			h.raw(`<p>Sign in to join your interviews and review candidates.</p></section>`)
			return
		}
		h.raw(`<p>Welcome back, `)
		h.text(sess.Identity.Name)
		h.raw(`.</p>`)
		if sess.Identity.Role == domain.RoleCandidate {
			h.raw(`<a class="btn" href="/dashboard">Your interviews</a>`)
		}
		h.raw(`</section>`)
	}))
}

// DashboardPage lists interviews with their candidates.
func DashboardPage(sess *domain.Session, interviews []domain.Interview, users []domain.User) templ.Component {
	return Layout("Dashboard", sess, component(func(h *htmlWriter) {
		h.raw(`<h1>Interviews</h1>`)
		if len(interviews) == 0 {
			h.raw(`<p class="empty">No interviews scheduled.</p>`)
			return
		}
		h.raw(`<ul class="interviews">`)
		for _, iv := range interviews {
			candidate := service.Resolve(users, iv.CandidateID)
			h.raw(`<li class="interview"><a`)
			h.attr("href", interviewPath(iv.ID))
			h.raw(`>`)
			h.text(iv.Title)
			h.raw(`</a><span class="candidate">`)
			h.text(candidate.Name)
			h.raw(`</span><span class="time">`)
			h.timestamp(iv.StartTime)
			h.raw(`</span>`)
			h.component(statusBadge(iv.Status))
			h.raw(`</li>`)
		}
		h.raw(`</ul>`)
	}))
}

// InterviewPage renders one interview with its call panel and live feedback.
// The comment trigger is offered to reviewers only.
func InterviewPage(sess *domain.Session, iv *domain.Interview, candidate service.DisplayInfo) templ.Component {
	return Layout(iv.Title, sess, component(func(h *htmlWriter) {
		h.raw(`<article class="interview-detail"><h1>`)
		h.text(iv.Title)
		h.raw(`</h1>`)
		h.component(statusBadge(iv.Status))
		h.raw(`<p class="candidate">Candidate: `)
		h.text(candidate.Name)
		h.raw(`</p><p class="time">`)
		h.timestamp(iv.StartTime)
		h.raw(`</p>`)
		if iv.Description != "" {
			h.raw(`<p class="description">`)
			h.text(iv.Description)
			h.raw(`</p>`)
		}

		h.raw(`<section id="call" data-token-endpoint="/api/stream/token"`)
		h.attr("data-call-id", iv.CallID)
		h.raw(`></section>`)

		if service.ShouldShowDashboardAction(sess.Role) {
			h.raw(`<section class="feedback"><h2>Feedback</h2>`)
			h.component(CommentTrigger(iv.ID))
			h.raw(`<div`)
			h.attr("id", CommentDialogID)
			h.raw(`></div><div`)
			h.attr("data-init", "@get('"+livePath(iv.ID)+"')")
			h.raw(`>`)
			h.component(CommentList(LiveCommentsID, service.DialogData{}))
			h.raw(`</div></section>`)
		}
		h.raw(`</article>`)
	}))
}

func statusBadge(status domain.InterviewStatus) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<span`)
		h.attr("class", "badge status-"+string(status))
		h.raw(`>`)
		h.text(string(status))
		h.raw(`</span>`)
	})
}

func interviewPath(id int64) string {
	return "/interviews/" + strconv.FormatInt(id, 10)
}
