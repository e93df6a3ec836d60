// SPDX-License-Identifier: Unlicense OR MIT

//go:build !js

// Command webpaint builds the webpaint browser demo into a directory
// ready to be served:
//
//	webpaint -o www
//
// The directory contains index.html, wasm.js and main.wasm. Page query
// parameters select the WebGL strategy (webgl=prefer-webgl2,
// prefer-webgl1, webgl2 or webgl1), a periodic capture interval in
// frames (capture=n) and debug logging (debug=1).
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"

	"golang.org/x/tools/go/packages"
)

const demoPkg = "gioui.org/webpaint/cmd/webpaint"

var (
	destPath      = flag.String("o", "www", "output directory")
	buildTags     = flag.String("tags", "", "additional build tags")
	printCommands = flag.Bool("x", false, "print the commands")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: webpaint [flags] [package]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	pkg := demoPkg
	switch flag.NArg() {
	case 0:
	case 1:
		pkg = flag.Arg(0)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err := buildJS(pkg, *destPath); err != nil {
		fmt.Fprintf(os.Stderr, "webpaint: %v\n", err)
		os.Exit(1)
	}
}

func buildJS(pkgPath, out string) error {
	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedImports | packages.NeedDeps,
		Env:  append(os.Environ(), "GOOS=js", "GOARCH=wasm"),
	}, pkgPath)
	if err != nil {
		return err
	}
	if len(pkgs) != 1 {
		return fmt.Errorf("%s matched %d packages", pkgPath, len(pkgs))
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return pkg.Errors[0]
	}
	if pkg.Name != "main" {
		return fmt.Errorf("%s is not a main package", pkgPath)
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}
	cmd := exec.Command(
		"go",
		"build",
		"-tags="+*buildTags,
		"-o", filepath.Join(out, "main.wasm"),
		pkgPath,
	)
	cmd.Env = append(
		os.Environ(),
		"GOOS=js",
		"GOARCH=wasm",
	)
	if _, err := runCmd(cmd); err != nil {
		return err
	}
	if err := writeIndex(filepath.Join(out, "index.html"), filepath.Base(pkg.PkgPath), defaultOptions.canvasID); err != nil {
		return err
	}
	goroot, err := runCmd(exec.Command("go", "env", "GOROOT"))
	if err != nil {
		return err
	}
	wasmJS, err := findWasmExec(goroot)
	if err != nil {
		return err
	}
	extraJS, err := findPackagesJS(pkg, make(map[string]bool))
	if err != nil {
		return err
	}
	return mergeJSFiles(filepath.Join(out, "wasm.js"), append([]string{wasmJS}, extraJS...)...)
}

// findWasmExec locates the wasm_exec.js support script of a Go
// installation.
func findWasmExec(goroot string) (string, error) {
	for _, dir := range []string{"lib", "misc"} {
		p := filepath.Join(goroot, dir, "wasm", "wasm_exec.js")
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no wasm_exec.js in %s", goroot)
}

func writeIndex(dst, name, canvasID string) error {
	if canvasID == "" {
		return errors.New("empty canvas id")
	}
	t, err := template.New("").Parse(jsIndex)
	if err != nil {
		return err
	}
	var b bytes.Buffer
	if err := t.Execute(&b, struct {
		Name   string
		Canvas string
	}{
		Name:   name,
		Canvas: canvasID,
	}); err != nil {
		return err
	}
	return os.WriteFile(dst, b.Bytes(), 0o644)
}

// findPackagesJS returns the *_js.js files next to the sources of p
// and its dependencies.
func findPackagesJS(p *packages.Package, visited map[string]bool) (extraJS []string, err error) {
	if len(p.GoFiles) == 0 {
		return nil, nil
	}
	js, err := filepath.Glob(filepath.Join(filepath.Dir(p.GoFiles[0]), "*_js.js"))
	if err != nil {
		return nil, err
	}
	extraJS = append(extraJS, js...)
	for _, imp := range p.Imports {
		if !visited[imp.ID] {
			visited[imp.ID] = true
			extra, err := findPackagesJS(imp, visited)
			if err != nil {
				return nil, err
			}
			extraJS = append(extraJS, extra...)
		}
	}
	return extraJS, nil
}

// mergeJSFiles concatenates files into dst, between jsSetGo and
// jsStartGo.
func mergeJSFiles(dst string, files ...string) (err error) {
	w, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := io.WriteString(w, jsSetGo); err != nil {
		return err
	}
	for _, f := range files {
		if err := appendFile(w, f); err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, jsStartGo)
	return err
}

func appendFile(w io.Writer, src string) error {
	r, err := os.Open(src)
	if err != nil {
		return err
	}
	defer r.Close()
	if _, err := io.Copy(w, r); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

func runCmdRaw(cmd *exec.Cmd) ([]byte, error) {
	if *printCommands {
		fmt.Printf("%s\n", strings.Join(cmd.Args, " "))
	}
	out, err := cmd.Output()
	if err == nil {
		return out, nil
	}
	if err, ok := err.(*exec.ExitError); ok {
		return nil, fmt.Errorf("%s failed: %s%s", strings.Join(cmd.Args, " "), out, err.Stderr)
	}
	return nil, err
}

func runCmd(cmd *exec.Cmd) (string, error) {
	out, err := runCmdRaw(cmd)
	return string(bytes.TrimSpace(out)), err
}

const (
	jsIndex = `<!doctype html>
<html>
	<head>
		<meta charset="utf-8">
		<meta name="viewport" content="width=device-width, user-scalable=no">
		{{ if .Name }}<title>{{.Name}}</title>{{ end }}
		<script src="wasm.js"></script>
		<style>
			body,pre { margin:0;padding:0; }
			#{{.Canvas}} { display:block;width:100vw;height:75vh; }
			#screenshots img { margin:4px;border:1px solid #888; }
		</style>
	</head>
	<body>
		<canvas id="{{.Canvas}}"></canvas>
		<div id="screenshots"></div>
	</body>
</html>`
	// jsSetGo sets the window.go variable.
	jsSetGo = `(() => {
	window.go = {argv: [], env: {}, importObject: {go: {}}};
})();
`
	// jsStartGo runs main.wasm once the page has loaded.
	jsStartGo = `(() => {
	const defaultGo = new Go();
	Object.assign(defaultGo["env"], go["env"]);
	for (let key in go["importObject"]) {
		if (typeof defaultGo["importObject"][key] === "undefined") {
			defaultGo["importObject"][key] = {};
		}
		Object.assign(defaultGo["importObject"][key], go["importObject"][key]);
	}
	window.go = defaultGo;
	window.addEventListener("load", () => {
		WebAssembly.instantiateStreaming(fetch("main.wasm"), go.importObject).then((result) => {
			go.run(result.instance);
		});
	});
})();`
)
