package httphandlers

import (
	"html/template"
	"strconv"
)

var templateFuncs = template.FuncMap{
	"selected": func(contributeTo string, id uint64) bool {
		return contributeTo == strconv.FormatUint(id, 10)
	},
}

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Crowdfunding</title>
{{if .RefreshSeconds}}<meta http-equiv="refresh" content="{{.RefreshSeconds}}">{{end}}
<style>
body { font-family: sans-serif; max-width: 960px; margin: 0 auto; padding: 1rem; }
.alert { padding: .5rem 1rem; margin-bottom: .5rem; border-radius: 4px; }
.alert form { display: inline; float: right; }
.alert-success { background: #d1e7dd; } .alert-info { background: #cff4fc; }
.alert-warning { background: #fff3cd; } .alert-danger { background: #f8d7da; }
.card { border: 1px solid #ccc; border-radius: 4px; padding: 1rem; margin-bottom: 1rem; }
.badge { font-size: .8rem; padding: .1rem .4rem; border-radius: 4px; background: #6c757d; color: #fff; }
.busy { color: #856404; }
.actions form { display: inline; }
</style>
</head>
<body>
<header>
  <h1>Crowdfunding</h1>
  <p>Contract {{.ContractAddress}}</p>
  {{if .Connected}}
  <form method="post" action="/session/disconnect"><button type="submit">{{.AccountShort}} (Logout)</button></form>
  {{else}}
  <form method="post" action="/session/connect"><button type="submit">Connect Wallet</button></form>
  {{end}}
  <form method="post" action="/refresh"><button type="submit">Refresh</button></form>
  {{if .Snapshot.Busy}}<p class="busy">Loading...</p>{{end}}
</header>

<section id="alerts">
{{range .Alerts}}
  <div class="alert alert-{{.Level}}">{{.Message}}
    <form method="post" action="/alerts/{{.ID}}/dismiss"><button type="submit">&times;</button></form>
  </div>
{{end}}
</section>

<section id="create">
  <h2>Create Project</h2>
  <form method="post" action="/projects">
    <input name="title" placeholder="Title">
    <textarea name="description" placeholder="Description"></textarea>
    <input name="goal" placeholder="Goal (wei)">
    <input name="duration" placeholder="Duration (days)">
    <button type="submit">Create</button>
  </form>
</section>

<section id="contribute">
  <h2>Contribute</h2>
  <form method="post" action="/contributions">
    <input name="projectId" placeholder="Project ID" value="{{.ContributeTo}}">
    <input name="amount" placeholder="Amount (wei)">
    <button type="submit">Contribute</button>
  </form>
</section>

<section id="projects">
  <h2>Projects</h2>
  {{$contributeTo := .ContributeTo}}
  {{range .Snapshot.Projects}}
  <div class="card" id="project-{{.ID}}">
    <h3>{{.Title}} {{with .Badge}}<span class="badge">{{.}}</span>{{end}}{{if selected $contributeTo .ID}} <em>selected</em>{{end}}</h3>
    <p>{{.Description}}</p>
    <p>Owner: {{.OwnerShort}}</p>
    <p>Goal: {{.Goal}} wei</p>
    <p>Raised: {{.RaisedForDisplay}} wei</p>
    <p>Deadline: {{.DeadlineTime}}</p>
    {{if ne .UserContribution "0"}}<p>Your contribution: {{.UserContribution}} wei</p>{{end}}
    <div class="actions">
      {{if .CanContribute}}<a href="/?contribute={{.ID}}#contribute">Contribute</a>{{end}}
      {{if .CanRefund}}<form method="post" action="/projects/{{.ID}}/refund"><button type="submit">Get Refund</button></form>{{end}}
      {{if .CanWithdraw}}<form method="post" action="/projects/{{.ID}}/withdraw"><button type="submit">Withdraw Funds</button></form>{{end}}
    </div>
  </div>
  {{else}}
  <p>No projects found.</p>
  {{end}}
</section>
</body>
</html>
`
