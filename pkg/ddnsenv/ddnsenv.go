// Package ddnsenv probes the router environment for the external programs a
// DDNS client update run depends on.
package ddnsenv

import (
	"os"
	"os/exec"
)

// Deps carries the probing primitives so tests can substitute them.
// Zero-value fields fall back to the real implementations.
type Deps struct {
	LookPath func(file string) (string, error)
	Stat     func(path string) (os.FileInfo, error)
}

func (d Deps) lookPath(file string) (string, error) {
	if d.LookPath != nil {
		return d.LookPath(file)
	}
	return exec.LookPath(file)
}

func (d Deps) stat(path string) (os.FileInfo, error) {
	if d.Stat != nil {
		return d.Stat(path)
	}
	return os.Stat(path)
}

// Program is one PATH probe result.
type Program struct {
	Name  string `json:"name"`
	Path  string `json:"path,omitempty"`
	Found bool   `json:"found"`
}

// Report summarizes what the environment can do.
type Report struct {
	Programs     []Program `json:"programs"`
	HTTPSSupport bool      `json:"https_support"`
	DNSLookup    bool      `json:"dns_lookup"`
}

// transferPrograms fetch the update URL; lookupPrograms verify the
// registered IP. BusyBox applets count when present as standalone links.
var (
	transferPrograms = []string{"curl", "wget-ssl", "wget", "uclient-fetch"}
	lookupPrograms   = []string{"nslookup", "host", "khost", "hostip", "drill"}
)

// httpsCapable lists the transfer programs that can speak TLS on their own.
// Plain BusyBox wget and uclient-fetch need an SSL library that is not
// probed here.
var httpsCapable = map[string]bool{
	"curl":     true,
	"wget-ssl": true,
}

// Check probes the PATH for every known transfer and lookup program and
// derives the capability verdicts.
func Check(deps Deps) Report {
	var rep Report
	for _, name := range transferPrograms {
		p := probe(deps, name)
		rep.Programs = append(rep.Programs, p)
		if p.Found && httpsCapable[name] {
			rep.HTTPSSupport = true
		}
	}
	for _, name := range lookupPrograms {
		p := probe(deps, name)
		rep.Programs = append(rep.Programs, p)
		if p.Found {
			rep.DNSLookup = true
		}
	}
	return rep
}

func probe(deps Deps, name string) Program {
	path, err := deps.lookPath(name)
	if err != nil {
		return Program{Name: name}
	}
	return Program{Name: name, Path: path, Found: true}
}

// FileExists reports whether path names an existing regular file.
func FileExists(deps Deps, path string) bool {
	fi, err := deps.stat(path)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}
