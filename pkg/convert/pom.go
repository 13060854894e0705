package convert

import (
	"github.com/eddi-weiss/mavenizor/pkg/embedded"
	"github.com/eddi-weiss/mavenizor/pkg/maven"
	"github.com/eddi-weiss/mavenizor/pkg/osgi"
)

// Projects builds one POM model per converted bundle, in graph order.
// Source bundles are attached to their host artifact and get no POM of their
// own. Dependencies are the resolved requirements, with their translated
// range, followed by the REPLACE targets of embedded libraries.
//
// Each groupId:artifactId:type:classifier appears once. A Require-Bundle
// range replaces a range taken from a package import; otherwise the first
// requirement wins. Requirements on the bundle itself are dropped.
func Projects(r *Result) []*maven.Project {
	var out []*maven.Project
	for i := range r.Bundles {
		br := &r.Bundles[i]
		if !br.Converted() || br.Coordinate.Classifier != "" {
			continue
		}
		p := maven.NewProject(br.Coordinate)
		p.Name = br.SymbolicName
		self := dependencyKey(br.Coordinate)

		seen := make(map[string]int)
		fromBundle := make(map[string]bool)
		for _, req := range br.Requirements {
			if req.Target == nil {
				continue
			}
			dep := *req.Target
			dep.Classifier = ""
			key := dependencyKey(dep)
			if key == self {
				continue
			}
			byBundle := req.Kind == osgi.KindBundle
			if idx, ok := seen[key]; ok {
				if byBundle && !fromBundle[key] {
					d := &p.Dependencies[idx]
					d.Version = req.MavenRange
					d.Optional = optionalFlag(req.Optional)
					fromBundle[key] = true
				}
				continue
			}
			seen[key] = len(p.Dependencies)
			fromBundle[key] = byBundle
			p.AddDependency(dep, req.MavenRange, req.Optional)
		}
		for _, e := range br.Libraries {
			if e.Directive != embedded.Replace || e.Target == nil {
				continue
			}
			key := dependencyKey(*e.Target)
			if _, ok := seen[key]; ok || key == self {
				continue
			}
			seen[key] = len(p.Dependencies)
			p.AddDependency(*e.Target, e.Target.Version, false)
		}
		out = append(out, p)
	}
	return out
}

// dependencyKey identifies a dependency the way Maven does:
// groupId:artifactId:type:classifier.
func dependencyKey(c maven.Coordinate) string {
	typ := c.Type
	if typ == "" {
		typ = maven.DefaultType
	}
	return c.GroupID + ":" + c.ArtifactID + ":" + typ + ":" + c.Classifier
}

func optionalFlag(optional bool) string {
	if optional {
		return "true"
	}
	return ""
}
