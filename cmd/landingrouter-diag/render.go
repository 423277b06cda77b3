package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"landingrouter/internal/core/routing"
)

// writeReport prints a report for humans; issues and recommendations are bullet lists
func writeReport(w io.Writer, rep routing.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	p, res := rep.Parsed, rep.Resolution

	row := func(k, v string) { fmt.Fprintf(tw, "%s:\t%s\n", k, v) }
	row("Tested", fmt.Sprintf("%s (%s)", rep.TestedHost, rep.Variant))
	if rep.Input != rep.TestedHost {
		row("Input", rep.Input)
	}
	row("Normalized", dash(p.Normalized))
	row("Labels", dash(strings.Join(p.Labels, ", ")))
	row("Shape", shape(rep))
	switch {
	case p.Subdomain != "":
		row("Subdomain", p.Subdomain)
	case p.RejectedSubdomain != "":
		row("Subdomain", "- (not allowed: "+p.RejectedSubdomain+")")
	}
	if p.Registrable != "" {
		row("Registrable", p.Registrable+" (suffix "+p.PublicSuffix+")")
	}
	row("Lookup", fmt.Sprintf("%s  fallback=%s", dash(res.LookupKey), res.UsedFallback))
	row("Matched", matched(res.Matched))
	row("Target", strings.TrimSpace(string(rep.Target.Handler)+" "+rep.Target.Path))
	row("Routable", yesNo(rep.Routable))
	row("Healthy", yesNo(rep.Healthy))
	if rep.Error != "" {
		row("Error", rep.Error)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	list := func(title string, xs []string) {
		if len(xs) == 0 {
			return
		}
		fmt.Fprintf(w, "\n%s:\n", title)
		for _, x := range xs {
			fmt.Fprintf(w, "  - %s\n", x)
		}
	}
	issues := make([]string, 0, len(res.Issues))
	for _, is := range res.Issues {
		issues = append(issues, string(is))
	}
	list("Issues", issues)
	list("Recommendations", res.Recommendations)
	return nil
}

func shape(rep routing.Report) string {
	p := rep.Parsed
	var tags []string
	if p.IsValidFormat {
		tags = append(tags, "valid")
	}
	if p.IsTLDOnly {
		tags = append(tags, "tld-only")
	}
	if p.IsIP {
		tags = append(tags, "ip")
	}
	if p.IsPreview {
		tags = append(tags, "preview")
	}
	if p.HadWWWPrefix {
		tags = append(tags, "www")
	}
	if len(tags) == 0 {
		return "invalid"
	}
	return strings.Join(tags, ", ")
}

func matched(m *routing.DomainRecord) string {
	if m == nil {
		return "-"
	}
	state := "inactive"
	if m.IsActive {
		state = "active"
	}
	root := "none"
	if m.HasRootPage {
		root = "inactive"
		if m.RootPageActive {
			root = "active"
		}
	}
	redirect := "off"
	if m.RedirectWWWToNonWWW {
		redirect = "on"
	}
	return fmt.Sprintf("%s (%s, verification=%s, root page=%s, www redirect=%s)",
		m.Name, state, m.VerificationStatus, root, redirect)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
