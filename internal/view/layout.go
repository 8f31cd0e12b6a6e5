package view

import (
	"github.com/a-h/templ"

	"github.com/msomdec/interview-room/internal/domain"
	"github.com/msomdec/interview-room/internal/service"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// Layout wraps body in the page shell: header navigation and the toast area.
func Layout(title string, sess *domain.Session, body templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(` | Interview Room</title>`)
		h.raw(`<script type="module"`)
		h.attr("src", datastarScript)
		h.raw(`></script></head><body>`)

		h.raw(`<header class="navbar"><a class="brand" href="/">Interview Room</a><nav>`)
		h.component(DashboardButton(sess.Role))
		if sess.Authenticated() {
			h.raw(`<span class="user">`)
			h.text(sess.Identity.Name)
			h.raw(`</span>`)
			h.raw(`<button class="btn btn-ghost" data-on:click="@post('/api/auth/logout'); window.location = '/'">Sign out</button>`)
		}
		h.raw(`</nav></header>`)

		h.raw(`<main>`)
		h.component(body)
		h.raw(`</main><div id="toasts" class="toasts"></div></body></html>`)
	})
}

// DashboardButton links to the dashboard when the role allows it. Nothing is
// rendered while the role is loading or for candidates.
func DashboardButton(state domain.RoleState) templ.Component {
	return component(func(h *htmlWriter) {
		if !service.ShouldShowDashboardAction(state) {
			return
		}
		h.raw(`<a id="dashboard-button" class="btn btn-sm" href="/dashboard">Dashboard</a>`)
	})
}

// Toast is a notification appended to #toasts.
func Toast(n service.Notice) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div`)
		h.attr("class", "toast toast-"+string(n.Kind))
		h.raw(` role="status">`)
		h.text(n.Message)
		h.raw(`</div>`)
	})
}
