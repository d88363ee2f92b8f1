// Package loader finds lintable files and turns them into JavaScript that
// the parser accepts.
//
// TypeScript and JSX sources are transpiled with esbuild. Positions found in
// the transpiled output are mapped back to the original file through the
// source map esbuild emits.
package loader
