package main

import (
	"errors"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	ftdi "github.com/yunginnanet/ft232h"

	"github.com/yunginnanet/ftdi-rhd2164/pkg/ft232h"
	"github.com/yunginnanet/ftdi-rhd2164/pkg/rhd2164"
)

var log zerolog.Logger

func init() {
	cw := zerolog.ConsoleWriter{Out: os.Stdout}
	log = zerolog.New(cw).With().Timestamp().Logger()
}

func flags() (ftindex int, cs uint, doubled bool, sweeps int) {
	fti := flag.Int("FT232H", 0, "FT232H Index")
	csi := flag.Uint("CS", 0x10, "Chip Select (SPI, Digital)")
	dbl := flag.Bool("ddr", false, "doubled-bit (DDR flip-flop) wiring")
	swp := flag.Int("sweeps", 10, "number of full channel sweeps")
	flag.Parse()
	return *fti, *csi, *dbl, *swp
}

func main() {
	ftindex, cs, doubled, sweeps := flags()

	spi, err := ft232h.Connect(ft232h.ByIndex(ftindex))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to FT232H")
	}

	log.Info().Any("info", spi.Info()).
		Msgf("connected to FT232H: %s", spi)

	spiCfg := spi.SPI.GetConfig()
	spiCfg.Clock = 1700000
	spiCfg.CS = ftdi.C(cs)
	spiCfg.Mode = 0x00000000
	spiCfg.ActiveLow = false

	if err = spi.SetCSPin(cs); err != nil {
		log.Fatal().Err(err).Msg("failed to configure CS pin")
	}

	log.Debug().Any("config", spiCfg).Msg("initializing SPI")
	if err = spi.SPI.Config(spiCfg); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize SPI")
	}

	cfg := rhd2164.DefaultConfig()
	cfg.DoubleBits = doubled

	dev := rhd2164.NewRHD2164(spi, cfg)

	log.Debug().Any("config", cfg).Msg("initializing RHD2164")
	if err = dev.Setup(); err != nil {
		if errors.Is(err, rhd2164.ErrVerify) {
			log.Warn().Err(err).Msg("register verification failed, continuing")
		} else {
			log.Fatal().Err(err).Msg("failed to set up RHD2164")
		}
	}

	log.Info().Msg("running ADC calibration")
	if err = dev.Calibrate(); err != nil {
		log.Fatal().Err(err).Msg("calibration failed")
	}

	log.Info().Any("registers", dev.Registers()).Msg("initialized RHD2164")

	time.Sleep(100 * time.Millisecond)

	for i := 0; i < sweeps; i++ {
		start := time.Now()
		if err = dev.SampleAll(); err != nil {
			log.Error().Err(err).Int("sweep", i).Msg("sweep had failed exchanges")
			continue
		}
		elapsed := time.Since(start)

		buf := dev.Samples()
		log.Info().Int("sweep", i).Dur("took", elapsed).
			Hex("samples", buf[:]).Msg("sweep complete")
	}

	if err = spi.Close(); err != nil {
		log.Fatal().Err(err).Msg("failed to close FT232H")
	}

	log.Info().Msg("closed RHD2164")
}
