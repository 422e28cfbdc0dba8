// Package glue receives jni_glue.go, rendered by the java package tests.
package glue
