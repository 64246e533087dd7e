/*


Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-logr/zapr"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/divyalingaiah/powerhal/internal/boost"
	"github.com/divyalingaiah/powerhal/internal/cpuset"
	"github.com/divyalingaiah/powerhal/internal/devices"
	"github.com/divyalingaiah/powerhal/internal/input"
	"github.com/divyalingaiah/powerhal/internal/monitoring"
	"github.com/divyalingaiah/powerhal/internal/sysfs"
)

func main() {
	var metricsAddr string
	var devMode bool
	var inputDevices string
	flag.StringVar(&metricsAddr, "metrics-bind-address", ":10001", "The address the metric endpoint binds to.")
	flag.BoolVar(&devMode, "zap-devel", false, "Enable development mode logging.")
	flag.StringVar(&inputDevices, "input-devices", "",
		"Comma-separated evdev device nodes to read touch events from.")
	flag.Parse()

	zapCfg := zap.NewProductionConfig()
	if devMode {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapLog, err := zapCfg.Build()
	if err != nil {
		os.Stderr.WriteString("failed to set up logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := zapr.NewLogger(zapLog)
	setupLog := log.WithName("setup")

	fs := sysfs.New(log.WithName("sysfs"))
	collaborators := []boost.StateSetter{
		devices.NewMonitor(fs, nil, log.WithName("devices")),
		cpuset.NewController(cpuset.DefaultConfig(), fs, log.WithName("cpuset")),
	}

	coord := boost.New(boost.DefaultConfig(), fs, collaborators, log.WithName("powerhal"))
	coord.Init()

	registry := prom.NewRegistry()
	if err := monitoring.RegisterCollectors(registry, coord, log.WithName("monitoring")); err != nil {
		setupLog.Error(err, "unable to register collectors")
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: metricsAddr, Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			setupLog.Error(err, "metrics endpoint failed")
		}
	}()

	var reader *input.Reader
	if inputDevices != "" {
		reader = input.NewReader(coord, strings.Split(inputDevices, ","), log.WithName("input"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	setupLog.Info("powerhald running", "backend", coord.Backend().String(), "metricsAddr", metricsAddr)
	<-ctx.Done()

	setupLog.Info("shutting down")
	if reader != nil {
		reader.Stop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		setupLog.Error(err, "metrics endpoint shutdown failed")
	}
	coord.Close()
}
